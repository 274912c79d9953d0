// loadgen is a black-box load generator for the hospital records API.
// It registers a throwaway user, logs in, seeds a department and a
// doctor, then hammers patient and appointment routes, reporting
// latency percentiles per operation.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	BaseURL  string        `envconfig:"BASE_URL" default:"http://localhost:8080"`
	Workers  int           `envconfig:"WORKERS" default:"8"`
	Requests int           `envconfig:"REQUESTS" default:"1000"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

type result struct {
	op      string
	latency time.Duration
	status  int
	err     error
}

type client struct {
	base  string
	http  *http.Client
	token string
}

func (c *client) do(method, path string, body interface{}) (int, map[string]interface{}, time.Duration, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, nil, 0, err
		}
	}

	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		return 0, nil, latency, err
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded, latency, nil
}

var (
	specialties = []string{"Cardiologist", "Neurologist", "Pediatrician", "Surgeon"}
	departments = []string{"Cardiology", "Neurology", "Pediatrics", "Surgery"}
	genders     = []string{"Male", "Female", "Other"}
)

func main() {
	var cfg Config
	if err := envconfig.Process("loadgen", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse configuration")
	}

	c := &client{base: cfg.BaseURL, http: &http.Client{Timeout: cfg.Timeout}}
	seed := time.Now().UnixNano()

	// Register + login a throwaway user.
	username := fmt.Sprintf("loadgen-%d", seed)
	if status, _, _, err := c.do("POST", "/register", map[string]string{
		"username": username, "password": "loadgen-secret",
	}); err != nil || status != http.StatusCreated {
		log.Fatal().Err(err).Int("status", status).Msg("register failed")
	}
	_, body, _, err := c.do("POST", "/login", map[string]string{
		"username": username, "password": "loadgen-secret",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		log.Fatal().Msg("login returned no access token")
	}
	c.token = token

	// Seed one department and one doctor for appointments to reference.
	_, dept, _, err := c.do("POST", "/departments", map[string]interface{}{
		"name":         "Department of " + departments[rand.Intn(len(departments))],
		"floor_number": rand.Intn(5) + 1,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed department failed")
	}
	deptID := int64(dept["id"].(float64))

	_, doc, _, err := c.do("POST", "/doctors", map[string]interface{}{
		"first_name":    "Load",
		"last_name":     fmt.Sprintf("Gen%d", seed),
		"specialty":     specialties[rand.Intn(len(specialties))],
		"phone_number":  "555-0100",
		"email":         fmt.Sprintf("loadgen-%d@example.com", seed),
		"department_id": deptID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed doctor failed")
	}
	doctorID := int64(doc["id"].(float64))

	log.Info().
		Int("workers", cfg.Workers).
		Int("requests", cfg.Requests).
		Str("base_url", cfg.BaseURL).
		Msg("starting load")

	results := make(chan result, cfg.Requests)
	jobs := make(chan int, cfg.Requests)
	for i := 0; i < cfg.Requests; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			wc := &client{base: cfg.BaseURL, http: &http.Client{Timeout: cfg.Timeout}, token: token}
			for i := range jobs {
				results <- runJob(wc, worker, i, doctorID)
			}
		}(w)
	}
	wg.Wait()
	close(results)

	report(results)
}

func runJob(c *client, worker, i int, doctorID int64) result {
	switch i % 3 {
	case 0:
		status, body, latency, err := c.do("POST", "/patients", map[string]interface{}{
			"first_name":    "Pat",
			"last_name":     fmt.Sprintf("W%dN%d", worker, i),
			"date_of_birth": fmt.Sprintf("19%02d-%02d-%02d", rand.Intn(90)+10, rand.Intn(12)+1, rand.Intn(28)+1),
			"gender":        genders[rand.Intn(len(genders))],
			"phone_number":  "555-0199",
			"address":       "1 Benchmark Way",
			"email":         fmt.Sprintf("pat-%d-%d-%d@example.com", worker, i, time.Now().UnixNano()),
		})
		if err == nil && status == http.StatusCreated {
			if id, ok := body["id"].(float64); ok {
				c.do("POST", "/appointments", map[string]interface{}{
					"patient_id":           int64(id),
					"doctor_id":            doctorID,
					"appointment_datetime": time.Now().Add(24 * time.Hour).Format("2006-01-02T15:04:05"),
					"reason_for_visit":     "load test",
				})
			}
		}
		return result{op: "create_patient", latency: latency, status: status, err: err}
	case 1:
		status, _, latency, err := c.do("GET", "/patients", nil)
		return result{op: "list_patients", latency: latency, status: status, err: err}
	default:
		status, _, latency, err := c.do("GET", "/appointments", nil)
		return result{op: "list_appointments", latency: latency, status: status, err: err}
	}
}

func report(results chan result) {
	latencies := make(map[string][]time.Duration)
	errors := make(map[string]int)
	for r := range results {
		if r.err != nil || r.status >= 400 {
			errors[r.op]++
			continue
		}
		latencies[r.op] = append(latencies[r.op], r.latency)
	}

	ops := make([]string, 0, len(latencies))
	for op := range latencies {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	for _, op := range ops {
		ls := latencies[op]
		sort.Slice(ls, func(i, j int) bool { return ls[i] < ls[j] })
		log.Info().
			Str("op", op).
			Int("count", len(ls)).
			Int("errors", errors[op]).
			Dur("p50", percentile(ls, 0.50)).
			Dur("p95", percentile(ls, 0.95)).
			Dur("p99", percentile(ls, 0.99)).
			Msg("results")
	}
	for op, count := range errors {
		if _, ok := latencies[op]; !ok {
			log.Warn().Str("op", op).Int("errors", count).Msg("all requests failed")
		}
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}
