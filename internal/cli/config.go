package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	ClientID  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("ZKGAMES_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("ZKGAMES_TOKEN"),
		TokenFile: getEnvOrDefault("ZKGAMES_TOKEN_FILE", defaultTokenFile()),
		ClientID:  os.Getenv("ZKGAMES_CLIENT_ID"),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadToken loads the token from file if not already set
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No token file is fine
		}
		return err
	}

	c.Token = string(data)
	return nil
}

// SaveToken saves the token to the token file
func (c *Config) SaveToken(token string) error {
	c.Token = token
	return writeConfigFile(c.TokenFile, []byte(token))
}

// LoadClientID loads the saved game client id if not already set.
// Login saves it so that commitment binding does not need a flag every time.
func (c *Config) LoadClientID() error {
	if c.ClientID != "" {
		return nil
	}

	data, err := os.ReadFile(c.clientIDFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	c.ClientID = string(data)
	return nil
}

// SaveClientID persists the game client id alongside the token
func (c *Config) SaveClientID(clientID string) error {
	c.ClientID = clientID
	return writeConfigFile(c.clientIDFile(), []byte(clientID))
}

// SecretFile returns the path where the commitment secret for one game is kept.
// Secrets never leave this machine; losing the file forfeits the game.
func (c *Config) SecretFile(clientID string, gameID uint64) string {
	name := fmt.Sprintf("secret-%s-%d", clientID, gameID)
	return filepath.Join(filepath.Dir(c.TokenFile), "secrets", name)
}

func (c *Config) clientIDFile() string {
	return filepath.Join(filepath.Dir(c.TokenFile), "client_id")
}

func writeConfigFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zkgames/token"
	}
	return filepath.Join(home, ".zkgames", "token")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
