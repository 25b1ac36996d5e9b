package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"

	"alfredoptarigan/resume-portal/internal/config"
)

// ScoringFailedFeedback is persisted when the predictor is unreachable.
// The caller cannot tell this apart from a genuine zero score; known gap.
const ScoringFailedFeedback = "Resume scoring failed. Please try again."

type ScorerService interface {
	// Score never returns an error: a predictor failure degrades to a
	// zero score with fixed feedback, and that result is persisted as if
	// it were valid.
	Score(ctx context.Context, text string) (int, string)
}

type scorerService struct {
	client *http.Client
	cfg    config.PredictorConfig
}

func NewScorerService(cfg config.PredictorConfig) ScorerService {
	return &scorerService{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

type predictRequest struct {
	Skills         string `json:"skills"`
	Experience     int    `json:"experience"`
	Education      string `json:"education"`
	Certifications string `json:"certifications"`
	Projects       int    `json:"projects"`
	Salary         int    `json:"salary"`
}

type predictResponse struct {
	Score float64 `json:"score"`
}

// Score implements ScorerService.
func (s *scorerService) Score(ctx context.Context, text string) (int, string) {
	payload := predictRequest{
		Skills:         text,
		Experience:     s.cfg.Experience,
		Education:      s.cfg.Education,
		Certifications: s.cfg.Certifications,
		Projects:       s.cfg.Projects,
		Salary:         s.cfg.Salary,
	}

	score, err := s.predict(ctx, payload)
	if err != nil {
		log.Printf("⚠️  Predictor call failed: %v\n", err)
		return 0, ScoringFailedFeedback
	}

	return score, FeedbackForScore(score)
}

func (s *scorerService) predict(ctx context.Context, payload predictRequest) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("predict request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("predictor returned status %d", resp.StatusCode)
	}

	var result predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode predict response: %w", err)
	}

	return int(math.Round(result.Score)), nil
}

// FeedbackForScore maps a rounded score onto the fixed feedback ladder.
// Bands are contiguous over [0,100] with inclusive lower bounds.
func FeedbackForScore(score int) string {
	switch {
	case score >= 90:
		return "Outstanding resume! Ready for top opportunities. You have a strong combination of technical and soft skills. Keep your resume updated with the latest experiences."
	case score >= 80:
		return "Very strong resume! Add minor improvements to reach excellence. Consider adding measurable achievements (e.g., 'Improved system performance by 20%') to further strengthen it."
	case score >= 70:
		return "Good resume! Try refining a few more skills or experiences. Adding contributions to open-source projects or leadership activities could boost your profile."
	case score >= 60:
		return "Decent resume. Add a few more relevant skills and projects. Highlight any internships, freelance work, or certifications to make it more competitive."
	case score >= 50:
		return "Average resume. Try to add technical certifications, achievements. Focus on demonstrating problem-solving skills and real-world project experience."
	case score >= 40:
		return "Weak resume. Focus on adding more technical and leadership skills. Include academic projects, hackathons, coding competitions, and teamwork examples."
	case score >= 30:
		return "Poor resume. Include more projects, internships, and certifications. Consider completing online courses and gaining practical experience through internships."
	default:
		return "Very poor. Strongly recommend rebuilding your resume from scratch. Focus on learning in-demand skills and gaining hands-on experience through internships and personal projects."
	}
}
