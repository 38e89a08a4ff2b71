package domain

import "fmt"

type Schedule struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

// Environment selects the messaging webhook the server pushes a report to.
type Environment string

const (
	EnvironmentTest Environment = "test"
	EnvironmentProd Environment = "prod"
)

func ParseEnvironment(s string) (Environment, error) {
	switch env := Environment(s); env {
	case EnvironmentTest, EnvironmentProd:
		return env, nil
	default:
		return "", &ValidationError{Reason: fmt.Sprintf("unknown environment %q, want %q or %q", s, EnvironmentTest, EnvironmentProd)}
	}
}
