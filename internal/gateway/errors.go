package gateway

import "fmt"

// ConfigurationError reports a template version whose credential or
// template id is not configured.
type ConfigurationError struct {
	Version           int
	MissingCredential bool
	MissingTemplateID bool
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("template version %d: missing API key or template ID (credential missing: %t, template id missing: %t)",
		e.Version, e.MissingCredential, e.MissingTemplateID)
}

// UpstreamError is a non-200 answer from the rendering provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("render provider error %d: %s", e.StatusCode, e.Body)
}

// TransportError wraps a network level failure. Nothing is retried unless
// provider.retryCount is configured.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "render provider unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
