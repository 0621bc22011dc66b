package notify

import "time"

// Config holds SMTP and delivery settings for the Mailer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From defaults to Username when empty.
	From string
	// To is the business contact address every notification goes to.
	To string
	// Timeout bounds a single delivery, including dial and SMTP dialogue.
	Timeout time.Duration
	// CircuitFailureThreshold opens the circuit after this many consecutive failures.
	CircuitFailureThreshold int
	// CircuitReset is how long the circuit stays open before a send is retried.
	CircuitReset time.Duration
}

// DefaultConfig returns Gmail submission settings without credentials.
func DefaultConfig() Config {
	return Config{
		Host:                    "smtp.gmail.com",
		Port:                    587,
		Timeout:                 10 * time.Second,
		CircuitFailureThreshold: 5,
		CircuitReset:            time.Minute,
	}
}

// Enabled reports whether the config carries everything needed to send.
func (c Config) Enabled() bool {
	return c.Host != "" && c.Port > 0 && c.Username != "" && c.Password != "" && c.To != ""
}

func (c Config) sender() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}
