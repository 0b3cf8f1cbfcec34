package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/fatih/color"
)

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

type step struct {
	title      string
	method     string
	path       string
	body       interface{}
	wantStatus int
	// live steps call a paid provider and only run with -live
	live bool
}

func sendRequest(client *http.Client, baseURL, method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	baseURL := flag.String("base", "http://localhost:3000/api", "API base URL")
	address := flag.String("address", "123 Main St, Fort Collins, CO", "address used for the maps lookup")
	live := flag.Bool("live", false, "also run steps that call the image and vision providers")
	flag.Parse()

	client := &http.Client{Timeout: 3 * time.Minute}
	options := map[string]interface{}{"nativePlanting": true, "rainGarden": true}

	steps := []step{
		{title: "Health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{title: "Build prompt", method: http.MethodPost, path: "/prompt", body: map[string]interface{}{"options": options}, wantStatus: http.StatusOK},
		{title: "Maps lookup", method: http.MethodGet, path: "/maps?address=" + url.QueryEscape(*address), wantStatus: http.StatusOK},
		{title: "Generate without prompt is rejected", method: http.MethodPost, path: "/generate", body: map[string]interface{}{"isEdit": false}, wantStatus: http.StatusBadRequest},
		{title: "Breakdown without image is rejected", method: http.MethodPost, path: "/breakdown", body: map[string]interface{}{"tier": "Basic"}, wantStatus: http.StatusBadRequest},
		{title: "Generate designs", method: http.MethodPost, path: "/designs", body: map[string]interface{}{"options": options, "aspect": "16:9", "n": 1}, wantStatus: http.StatusOK, live: true},
	}

	color.Cyan("🚀 Smoke testing %s\n", *baseURL)

	failed := 0
	for i, s := range steps {
		if s.live && !*live {
			color.White("\n%d. %s (skipped, pass -live)", i+1, s.title)
			continue
		}

		color.Yellow("\n%d. %s", i+1, s.title)
		resp, body, err := sendRequest(client, *baseURL, s.method, s.path, s.body)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}

		if resp.StatusCode != s.wantStatus {
			failed++
			color.Red("Status: %s (want %d)", resp.Status, s.wantStatus)
		} else {
			color.Green("Status: %s", resp.Status)
		}
		prettyPrint(body)
	}

	if failed > 0 {
		color.Red("\n%d step(s) failed", failed)
		os.Exit(1)
	}
	color.Green("\nAll steps passed")
}
