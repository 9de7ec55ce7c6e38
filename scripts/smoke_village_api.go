package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // generation calls can take a while
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Village API Smoke Test\n")

	// 1. Dream session snapshot
	color.Yellow("\n[DREAM] 1. Get Current Session")
	resp, body, err := sendRequest("GET", "/dream/v1/session", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var sessionResp map[string]interface{}
	json.Unmarshal(body, &sessionResp)
	prettyPrint(sessionResp)

	// 2. Image size tier
	color.Yellow("\n[DREAM] 2. Set Image Size to 2K")
	resp, body, err = sendRequest("PUT", "/dream/v1/image-size", map[string]interface{}{"size": "2K"})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 3. Story generation (exercises the full text + image path)
	color.Yellow("\n[STORY] 3. Generate Bedtime Story")
	storyReq := map[string]interface{}{
		"philosophy1": "stoicism",
		"philosophy2": "taoism",
		"emotion1":    "wonder",
		"emotion2":    "calm",
		"setting":     "forest",
		"duration":    "5",
	}
	resp, body, err = sendRequest("POST", "/story/v1/generate", storyReq)
	var storyID string
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var storyResp map[string]interface{}
		json.Unmarshal(body, &storyResp)
		if data, ok := storyResp["data"].(map[string]interface{}); ok {
			if id, ok := data["id"].(string); ok {
				storyID = id
				fmt.Printf("Story ID: %s\n", storyID)
				fmt.Printf("Title: %s\n", data["title"])
			}
		} else {
			prettyPrint(storyResp)
		}
	}

	// 4. Save it, then list the library
	if storyID != "" {
		color.Yellow("\n[STORY] 4. Save Story + List Library")
		resp, _, err = sendRequest("POST", "/story/v1/"+storyID+"/save", nil)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
		}

		resp, body, err = sendRequest("GET", "/story/v1", nil)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			var listResp map[string]interface{}
			json.Unmarshal(body, &listResp)
			if data, ok := listResp["data"].([]interface{}); ok {
				fmt.Printf("Saved stories: %d\n", len(data))
			}
		}
	} else {
		color.Red("\n[SKIP] Save skipped (no ID returned from generate)")
	}

	// 5. Chapel confession
	color.Yellow("\n[CHAPEL] 5. Release a Confession")
	resp, body, err = sendRequest("POST", "/chapel/v1/confess", map[string]interface{}{
		"confession": "I still haven't watered the plants.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var confessResp map[string]interface{}
		json.Unmarshal(body, &confessResp)
		if data, ok := confessResp["data"].(map[string]interface{}); ok {
			fmt.Printf("Reflection: %s\n", data["reflection"])
		}
	}

	// 6. Guestbook
	color.Yellow("\n[GUESTBOOK] 6. Sign + Read Guestbook")
	resp, body, err = sendRequest("POST", "/guestbook/v1", map[string]interface{}{"name": "Smoke Tester"})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var signResp map[string]interface{}
		json.Unmarshal(body, &signResp)
		prettyPrint(signResp)
	}

	color.Cyan("\n✅ Smoke Sequence Complete")
}
