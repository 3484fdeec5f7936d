package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/manifoldco/promptui"
)

func validateBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("enter an http(s) URL, e.g. http://localhost:5000")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 65535 {
		return errors.New("enter a port between 0 and 65535")
	}
	return nil
}

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to careerbot! Let's connect to your career-advice server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Server URL.
	urlPrompt := promptui.Prompt{
		Label:    "Career-advice server URL",
		Default:  cfg.API.BaseURL,
		Validate: validateBaseURL,
	}
	baseURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	cfg.API.BaseURL = baseURL

	// 2. Session cookie, optional.
	cookiePrompt := promptui.Prompt{
		Label: "Session cookie from a logged-in browser (leave blank to stay anonymous)",
		Mask:  '*',
	}
	cookie, err := cookiePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("session cookie: %w", err)
	}
	cfg.API.SessionCookie = cookie

	// 3. Truncation strategy.
	truncPrompt := promptui.Select{
		Label: "Section truncation",
		Items: []string{
			"declared: a section ends at the first later title in declaration order",
			"nearest:  a section ends at the closest following title",
		},
	}
	truncIdx, _, err := truncPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("truncation selection: %w", err)
	}
	cfg.Format.Truncation = []Truncation{TruncateDeclared, TruncateNearest}[truncIdx]

	// 4. Markdown fallback.
	mdPrompt := promptui.Select{
		Label: "Render unstructured replies as markdown",
		Items: []string{"no", "yes"},
	}
	mdIdx, _, err := mdPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("markdown selection: %w", err)
	}
	cfg.Format.Markdown = mdIdx == 1

	// 5. Preview server port.
	portPrompt := promptui.Prompt{
		Label:    "Preview server port",
		Default:  strconv.Itoa(cfg.Serve.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Serve.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
