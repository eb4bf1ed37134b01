// Bliic API Quickstart
//
// This is a minimal example of talking to the Bliic API with nothing but
// the standard library: log in, create a short link, list your links.
//
// Usage:
//   export BLIIC_EMAIL="you@example.com"
//   export BLIIC_PASSWORD="your-password"
//   go run main.go
//
// Point it at a local dev server with BLIIC_API_URL=http://localhost:8080

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Plan  string `json:"plan"`
	} `json:"user"`
}

type link struct {
	ID          string `json:"id"`
	ShortURL    string `json:"short_url"`
	Destination string `json:"destination"`
}

func main() {
	baseURL := os.Getenv("BLIIC_API_URL")
	if baseURL == "" {
		baseURL = "https://api.bliic.app"
	}
	email := os.Getenv("BLIIC_EMAIL")
	password := os.Getenv("BLIIC_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("BLIIC_EMAIL and BLIIC_PASSWORD environment variables are required")
	}

	// Log in
	var login loginResponse
	if err := call(http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &login); err != nil {
		log.Fatalf("login failed: %v", err)
	}
	log.Printf("✓ Logged in as %s (%s plan)", login.User.Email, login.User.Plan)

	// Create a short link
	var created link
	if err := call(http.MethodPost, baseURL+"/api/links", login.AccessToken, map[string]string{
		"destination": "https://example.com/docs/getting-started",
		"title":       "Getting started",
	}, &created); err != nil {
		log.Fatalf("create link failed: %v", err)
	}
	log.Printf("✓ Created %s -> %s", created.ShortURL, created.Destination)

	// List links
	var listing struct {
		Links []link `json:"links"`
	}
	if err := call(http.MethodGet, baseURL+"/api/links", login.AccessToken, nil, &listing); err != nil {
		log.Fatalf("list links failed: %v", err)
	}
	log.Printf("✓ Account has %d link(s)", len(listing.Links))
	for _, l := range listing.Links {
		fmt.Printf("  %s  %s\n", l.ShortURL, l.Destination)
	}
}

// call performs a JSON request and decodes the response into out.
func call(method, url, token string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (HTTP %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
