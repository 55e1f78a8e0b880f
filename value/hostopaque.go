package value

import "fmt"

// HostOpaque wraps a Go value handed in through the ExternalBridge so
// it can flow through ordinary property access and be passed back out
// to the host without the evaluator needing to understand its shape.
// Host distinguishes it from a plain object the way a
// java_value()/js_value() accessor pair would in a host-bridge API:
// Host() returns the wrapped Go value; the embedded Object lets script
// code still attach expando properties to it if needed.
type HostOpaque struct {
	*Object
	Host any
}

func NewHostOpaque(proto *Object, host any) *HostOpaque {
	return &HostOpaque{Object: NewObjectWithClass(proto, "HostOpaque"), Host: host}
}

func (h *HostOpaque) String() string  { return fmt.Sprintf("[host %v]", h.Host) }
func (h *HostOpaque) Inspect() string { return h.String() }
