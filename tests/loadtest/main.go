package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"
)

const (
	numWorkers = 50
	numUsers   = 200
)

var layerSamples = []map[string]any{
	{"price": map[string]any{"text": "$250,000"}, "address": map[string]any{"text": "12 Main St"}},
	{"home": map[string]any{"text": "HOME"}, "for sale": map[string]any{"text": "FOR SALE"}},
	{"button-cta": map[string]any{"text": "I WANT"}, "shape-1": map[string]any{}},
	{},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5*time.Second).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetTransport(&http.Transport{
			MaxIdleConns:        200,
			MaxIdleConnsPerHost: 200,
			IdleConnTimeout:     30 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   2 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		})
}

// The target server is expected to run with placeholder credentials or
// provider.mock enabled, otherwise every POST reaches the real provider.
func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8000", "posterd base URL")
	duration := flag.Duration("duration", 10*time.Second, "duration of each phase")
	flag.Parse()

	client := newClient(*baseURL)

	fmt.Println("=== posterd load test ===")
	fmt.Printf("Workers: %d | Phase: %s | Users: %d\n\n", numWorkers, *duration, numUsers)

	fmt.Print("Waiting for server... ")
	ready := false
	for i := 0; i < 30; i++ {
		if resp, err := client.R().Get("/health"); err == nil && resp.StatusCode() == http.StatusOK {
			ready = true
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
	if !ready {
		fmt.Println("FAILED: server not responding")
		return
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding posters (POST /generate-template/) ---")
	runPhase(*duration, func(rng *rand.Rand) result {
		return doGenerate(client, rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (50% POST, 50% GET) ---")
	runPhase(*duration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.50:
			return doGenerate(client, rng)
		case r < 0.95:
			return doListURLs(client, rng)
		default:
			return doTemplates(client)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (10% POST, 90% GET) ---")
	runPhase(*duration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doGenerate(client, rng)
		case r < 0.90:
			return doListURLs(client, rng)
		default:
			return doTemplates(client)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	all := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := all[r.endpoint]
			if !ok {
				s = &stats{}
				all[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(all, duration)
}

func printResults(all map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(all))
	for ep := range all {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 92))

	for _, ep := range endpoints {
		s := all[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-26s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	fmt.Println("  " + strings.Repeat("-", 92))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func userID(rng *rand.Rand) string {
	return fmt.Sprintf("user_%d", rng.Intn(numUsers))
}

func doGenerate(client *resty.Client, rng *rand.Rand) result {
	body := map[string]any{
		"templateVersion": rng.Intn(3) + 1,
		"userId":          userID(rng),
		"parameters":      layerSamples[rng.Intn(len(layerSamples))],
	}

	const ep = "POST /generate-template/"
	start := time.Now()
	resp, err := client.R().SetBody(body).Post("/generate-template/")
	lat := time.Since(start)
	if err != nil {
		return result{ep, 0, lat, true}
	}
	return result{ep, resp.StatusCode(), lat, resp.StatusCode() != http.StatusOK}
}

// doListURLs treats 404 as a valid answer for users not seeded yet.
func doListURLs(client *resty.Client, rng *rand.Rand) result {
	const ep = "GET /get-template-urls/"
	start := time.Now()
	resp, err := client.R().SetQueryParam("userId", userID(rng)).Get("/get-template-urls/")
	lat := time.Since(start)
	if err != nil {
		return result{ep, 0, lat, true}
	}
	code := resp.StatusCode()
	return result{ep, code, lat, code != http.StatusOK && code != http.StatusNotFound}
}

func doTemplates(client *resty.Client) result {
	const ep = "GET /templates/"
	start := time.Now()
	resp, err := client.R().Get("/templates/")
	lat := time.Since(start)
	if err != nil {
		return result{ep, 0, lat, true}
	}
	return result{ep, resp.StatusCode(), lat, resp.StatusCode() != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
