package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/gap"
	"github.com/jonathan/interview-prep/internal/ingestion"
	"github.com/jonathan/interview-prep/internal/plan"
	"github.com/jonathan/interview-prep/internal/questions"
	"github.com/jonathan/interview-prep/internal/types"
)

// analyzeRequest describes the candidate and the target. Exactly one of
// JDText, JDURL or Company must be set for the target side.
type analyzeRequest struct {
	ResumeText string `json:"resume_text"`
	JDText     string `json:"jd_text,omitempty"`
	JDURL      string `json:"jd_url,omitempty"`
	Company    string `json:"company,omitempty"`
	Role       string `json:"role,omitempty"`

	MinCategorySkills *int `json:"min_category_skills,omitempty"`
}

type analyzeResponse struct {
	Candidate *types.ExtractedSkillSet `json:"candidate"`
	Target    *types.ExtractedSkillSet `json:"target"`
	Gap       *types.GapResult         `json:"gap"`
	// Extra lists candidate skills the target does not ask for.
	Extra []types.GapSkill `json:"extra"`
}

type planRequest struct {
	analyzeRequest

	// Gap skips analysis and plans directly from a prior result.
	Gap *types.GapResult `json:"gap,omitempty"`

	Weeks             int `json:"weeks,omitempty"`
	MinutesPerWeek    int `json:"minutes_per_week,omitempty"`
	MinutesPerSkill   int `json:"minutes_per_skill,omitempty"`
	QuestionsPerSkill int `json:"questions_per_skill,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			s.jsonResponse(w, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}
	s.jsonResponse(w, http.StatusOK, status)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		JD   bool   `json:"jd,omitempty"` // tag importance from marker phrases
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, &BadRequestError{Message: "invalid JSON body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.handleError(w, &BadRequestError{Message: "text is required"})
		return
	}

	var skills *types.ExtractedSkillSet
	if req.JD {
		skills = s.matcher.ExtractJD(req.Text)
	} else {
		skills = s.matcher.Extract(req.Text)
	}
	s.jsonResponse(w, http.StatusOK, skills)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, &BadRequestError{Message: "invalid JSON body: " + err.Error()})
		return
	}

	resp, err := s.analyze(r, req)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// analyze runs the extraction and gap pipeline for an analyze request.
func (s *Server) analyze(r *http.Request, req analyzeRequest) (*analyzeResponse, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, &BadRequestError{Message: "resume_text is required"}
	}

	target, err := s.resolveTarget(r, req)
	if err != nil {
		return nil, err
	}

	candidate := s.matcher.Extract(req.ResumeText)

	policy := gap.Policy{MinCategorySkills: s.defaults.MinCategorySkills}
	if req.MinCategorySkills != nil {
		policy.MinCategorySkills = *req.MinCategorySkills
	}

	return &analyzeResponse{
		Candidate: candidate,
		Target:    target,
		Gap:       gap.Analyze(candidate, target, policy),
		Extra:     gap.Extra(candidate, target),
	}, nil
}

// resolveTarget builds the target skill set from whichever source the
// request names: inline JD text, a JD URL, or a company role profile.
func (s *Server) resolveTarget(r *http.Request, req analyzeRequest) (*types.ExtractedSkillSet, error) {
	sources := 0
	for _, set := range []bool{req.JDText != "", req.JDURL != "", req.Company != ""} {
		if set {
			sources++
		}
	}
	if sources == 0 {
		return nil, &BadRequestError{Message: "one of jd_text, jd_url or company is required"}
	}
	if sources > 1 {
		return nil, &BadRequestError{Message: "jd_text, jd_url and company are mutually exclusive"}
	}

	switch {
	case req.JDText != "":
		return s.matcher.ExtractJD(req.JDText), nil
	case req.JDURL != "":
		text, err := ingestion.FromURL(r.Context(), req.JDURL)
		if err != nil {
			return nil, &IngestionError{URL: req.JDURL, Err: err}
		}
		return s.matcher.ExtractJD(text), nil
	default:
		if req.Role == "" {
			return nil, &BadRequestError{Message: "role is required with company"}
		}
		target, err := s.catalog.TargetSkills(req.Company, req.Role, s.matcher)
		if err != nil {
			return nil, &NotFoundError{Resource: "company role", ID: req.Company + "/" + req.Role}
		}
		return target, nil
	}
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, &BadRequestError{Message: "invalid JSON body: " + err.Error()})
		return
	}

	gapResult := req.Gap
	if gapResult == nil {
		resp, err := s.analyze(r, req.analyzeRequest)
		if err != nil {
			s.handleError(w, err)
			return
		}
		gapResult = resp.Gap
	}

	studyPlan, err := s.generatePlan(gapResult, req)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, studyPlan)
}

func (s *Server) generatePlan(gapResult *types.GapResult, req planRequest) (*types.StudyPlan, error) {
	opts := plan.Options{
		Weeks:             req.Weeks,
		MinutesPerWeek:    req.MinutesPerWeek,
		MinutesPerSkill:   req.MinutesPerSkill,
		QuestionsPerSkill: req.QuestionsPerSkill,
	}
	if opts.Weeks == 0 {
		opts.Weeks = s.defaults.Weeks
	}
	if opts.MinutesPerWeek == 0 {
		opts.MinutesPerWeek = s.defaults.MinutesPerWeek
	}

	studyPlan, err := plan.Generate(gapResult, s.matcher.Taxonomy(), s.bank, opts)
	if err != nil {
		return nil, &BadRequestError{Message: err.Error()}
	}
	return studyPlan, nil
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	type companySummary struct {
		ID    string   `json:"id"`
		Name  string   `json:"name"`
		Roles []string `json:"roles"`
	}

	summaries := make([]companySummary, 0, len(s.catalog.Companies))
	for _, c := range s.catalog.Companies {
		roles := make([]string, 0, len(c.Roles))
		for role := range c.Roles {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		summaries = append(summaries, companySummary{ID: c.ID, Name: c.Name, Roles: roles})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"companies": summaries})
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	company, ok := s.catalog.Get(id)
	if !ok {
		s.handleError(w, &NotFoundError{Resource: "company", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, company)
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	filter := questions.Filter{
		Skill:      r.URL.Query().Get("skill"),
		Category:   r.URL.Query().Get("category"),
		Company:    r.URL.Query().Get("company"),
		Round:      r.URL.Query().Get("round"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}
	matched := s.bank.Select(filter)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count":     len(matched),
		"questions": matched,
	})
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.handleError(w, &StorageDisabledError{})
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, &BadRequestError{Message: "invalid JSON body: " + err.Error()})
		return
	}

	resp, err := s.analyze(r, req)
	if err != nil {
		s.handleError(w, err)
		return
	}

	rec := &db.AnalysisRecord{
		Company:   req.Company,
		Role:      req.Role,
		Candidate: resp.Candidate,
		Target:    resp.Target,
		Gap:       resp.Gap,
	}
	id, err := s.db.SaveAnalysis(r.Context(), rec)
	if err != nil {
		s.handleError(w, fmt.Errorf("failed to save analysis: %w", err))
		return
	}
	rec.ID = id
	s.jsonResponse(w, http.StatusCreated, rec)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.handleError(w, &StorageDisabledError{})
		return
	}

	limit := parseQueryInt(r, "limit", 20)
	records, err := s.db.ListAnalyses(r.Context(), limit)
	if err != nil {
		s.handleError(w, fmt.Errorf("failed to list analyses: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count":    len(records),
		"analyses": records,
	})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.handleError(w, &StorageDisabledError{})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.handleError(w, &BadRequestError{Message: "invalid analysis id"})
		return
	}

	rec, err := s.db.GetAnalysis(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.handleError(w, &StorageDisabledError{})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.handleError(w, &BadRequestError{Message: "invalid analysis id"})
		return
	}

	rec, err := s.db.GetAnalysis(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req planRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.handleError(w, &BadRequestError{Message: "invalid JSON body: " + err.Error()})
			return
		}
	}

	studyPlan, err := s.generatePlan(rec.Gap, req)
	if err != nil {
		s.handleError(w, err)
		return
	}

	planID, err := s.db.SavePlan(r.Context(), id, studyPlan)
	if err != nil {
		s.handleError(w, fmt.Errorf("failed to save plan: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusCreated, &db.PlanRecord{
		ID:         planID,
		AnalysisID: id,
		Plan:       studyPlan,
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.handleError(w, &StorageDisabledError{})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.handleError(w, &BadRequestError{Message: "invalid analysis id"})
		return
	}

	rec, err := s.db.GetPlan(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// parseQueryInt extracts an integer query parameter with a default
func parseQueryInt(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
