package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Walks one respondent through the full portal flow over HTTP: open a
// session, answer every question, submit, then rank the topics in the
// order the portal lists them. Useful as an end-to-end smoke check
// against a running server.
//
// Env: SIM_TOKEN (dev JWT from cmd/seed), SIM_PERIOD_ID, SIM_BASE_URL.

var (
	baseURL     = envOr("SIM_BASE_URL", "http://localhost:3000/api")
	accessToken = os.Getenv("SIM_TOKEN")
	periodID    = os.Getenv("SIM_PERIOD_ID")
)

// Simplified DTOs for the script
type sessionQuestion struct {
	Id       string   `json:"id"`
	Text     string   `json:"text"`
	Kind     string   `json:"kind"`
	ScaleMin *float64 `json:"scale_min"`
	ScaleMax *float64 `json:"scale_max"`
}

type sessionItem struct {
	Question sessionQuestion `json:"question"`
	Standing string          `json:"standing"`
}

type sessionView struct {
	Data struct {
		Index         int          `json:"index"`
		Current       *sessionItem `json:"current"`
		TotalCount    int          `json:"total_count"`
		AnsweredCount int          `json:"answered_count"`
		Progress      float64      `json:"progress"`
		IsLast        bool         `json:"is_last"`
		IsComplete    bool         `json:"is_complete"`
	} `json:"data"`
}

type topicList struct {
	Data []struct {
		Id    string `json:"id"`
		Title string `json:"title"`
	} `json:"data"`
}

func main() {
	if accessToken == "" || periodID == "" {
		log.Fatal("SIM_TOKEN and SIM_PERIOD_ID must be set")
	}

	fmt.Println("=== Questionnaire Walk-Through ===")

	start := time.Now()
	view, err := call("POST", sessionPath(""), nil)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	fmt.Printf("Session started: %d questions, %d already answered\n",
		view.Data.TotalCount, view.Data.AnsweredCount)

	for {
		cur := view.Data.Current
		if cur == nil {
			break
		}

		value := answerFor(cur.Question)
		fmt.Printf("Q%d [%s] %s -> %v\n", view.Data.Index+1, cur.Question.Kind, cur.Question.Text, value)

		view, err = call("PUT", sessionPath("/answer"), map[string]interface{}{"value": value})
		if err != nil {
			log.Fatalf("Failed to answer: %v", err)
		}

		if view.Data.IsLast {
			break
		}
		view, err = call("POST", sessionPath("/next"), nil)
		if err != nil {
			log.Fatalf("Failed to advance: %v", err)
		}
	}

	view, err = call("POST", sessionPath("/submit"), nil)
	if err != nil {
		log.Fatalf("Failed to submit: %v", err)
	}
	fmt.Printf("Submitted: progress=%.0f%% complete=%v (%v)\n",
		view.Data.Progress, view.Data.IsComplete, time.Since(start))

	rankTopics()
}

// answerFor picks a deterministic value: scale midpoint, boolean true.
func answerFor(q sessionQuestion) interface{} {
	if q.Kind == "boolean" {
		return true
	}
	min, max := 1.0, 5.0
	if q.ScaleMin != nil {
		min = *q.ScaleMin
	}
	if q.ScaleMax != nil {
		max = *q.ScaleMax
	}
	return (min + max) / 2
}

func rankTopics() {
	req, _ := http.NewRequest("GET", baseURL+"/topic/v1/?period_id="+periodID, nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Failed to list topics: %v", err)
	}
	defer resp.Body.Close()

	var topics topicList
	if err := json.NewDecoder(resp.Body).Decode(&topics); err != nil {
		log.Fatalf("Failed to decode topics: %v", err)
	}
	if len(topics.Data) == 0 {
		fmt.Println("No published topics to rank, done.")
		return
	}

	ids := make([]string, 0, len(topics.Data))
	for _, t := range topics.Data {
		ids = append(ids, t.Id)
		fmt.Printf("Rank %d: %s\n", len(ids), t.Title)
	}

	payload, _ := json.Marshal(map[string]interface{}{"topic_ids": ids})
	rankReq, _ := http.NewRequest("PUT", baseURL+"/ranking/v1/periods/"+periodID, bytes.NewBuffer(payload))
	rankReq.Header.Set("Authorization", "Bearer "+accessToken)
	rankReq.Header.Set("Content-Type", "application/json")

	rankResp, err := http.DefaultClient.Do(rankReq)
	if err != nil {
		log.Fatalf("Failed to submit ranking: %v", err)
	}
	defer rankResp.Body.Close()

	if rankResp.StatusCode != 200 {
		body, _ := io.ReadAll(rankResp.Body)
		log.Fatalf("Ranking API error %d: %s", rankResp.StatusCode, string(body))
	}
	fmt.Println("Ranking submitted.")
}

func call(method, path string, payload interface{}) (*sessionView, error) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, _ := http.NewRequest(method, baseURL+path, body)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API Error %d: %s", resp.StatusCode, string(raw))
	}

	var view sessionView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, err
	}
	return &view, nil
}

func sessionPath(suffix string) string {
	return "/questionnaire/v1/periods/" + periodID + "/session" + suffix
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
