package model

// GatewayHealth is the gateway's self-reported component state.
type GatewayHealth struct {
	Version  int
	Services map[string]bool // Service name to up/down state.
}

// Healthy returns true when every reported service is up.
func (h GatewayHealth) Healthy() bool {
	for _, up := range h.Services {
		if !up {
			return false
		}
	}
	return true
}
