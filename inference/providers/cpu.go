package providers

import ort "github.com/yalue/onnxruntime_go"

// CPUOptions carries no settings; the CPU provider is always available.
type CPUOptions struct{}

func (CPUOptions) isProviderOptions() {}

// CPUProvider represents the default CPU execution provider.
type CPUProvider struct{}

// NewCPUProvider creates a new CPU provider.
func NewCPUProvider() *CPUProvider {
	return &CPUProvider{}
}

// Backend returns the backend of the CPU provider.
func (p *CPUProvider) Backend() ProviderBackend { return CPUProviderBackend }

// Options returns the options of the CPU provider.
func (p *CPUProvider) Options() ProviderOptions { return CPUOptions{} }

// Append is a no-op: ONNX Runtime falls back to CPU when no provider is appended.
func (p *CPUProvider) Append(*ort.SessionOptions) error { return nil }
