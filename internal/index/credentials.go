package index

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/manifoldco/promptui"
)

// EnvFileName is the optional local env file holding index credentials.
const EnvFileName = ".shipper.env"

// Environment variables checked for stored credentials.
const (
	EnvUsername = "SHIPPER_USERNAME"
	EnvPassword = "SHIPPER_PASSWORD"
)

// Credentials authenticate uploads to a package index. They are read-only
// configuration; the pipeline never writes them anywhere.
type Credentials struct {
	Username string
	Password string
}

// ResolveCredentials resolves index credentials in precedence order:
// process environment, then the local .shipper.env file, then an interactive
// prompt when interactive is true.
func ResolveCredentials(interactive bool) (Credentials, error) {
	// godotenv only fills variables that are not already set, which keeps
	// the process environment ahead of the env file.
	_ = godotenv.Load(EnvFileName)

	creds := Credentials{
		Username: os.Getenv(EnvUsername),
		Password: os.Getenv(EnvPassword),
	}

	if creds.Username != "" && creds.Password != "" {
		return creds, nil
	}

	if !interactive {
		return Credentials{}, fmt.Errorf("index credentials not found: set %s and %s", EnvUsername, EnvPassword)
	}

	if creds.Username == "" {
		prompt := promptui.Prompt{Label: "Index username"}
		username, err := prompt.Run()
		if err != nil {
			return Credentials{}, fmt.Errorf("credential prompt cancelled: %w", err)
		}
		creds.Username = username
	}

	if creds.Password == "" {
		prompt := promptui.Prompt{Label: "Index password", Mask: '*'}
		password, err := prompt.Run()
		if err != nil {
			return Credentials{}, fmt.Errorf("credential prompt cancelled: %w", err)
		}
		creds.Password = password
	}

	return creds, nil
}
