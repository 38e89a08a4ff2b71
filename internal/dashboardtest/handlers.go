package dashboardtest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

var (
	zipMagic    = []byte("PK\x03\x04")
	datePattern = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

type leaderRequest struct {
	TeamName  string `json:"team_name"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	if req.Username != s.username || req.Password != s.password {
		fail(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: req.Username, Path: "/"})
	ok(w, map[string]any{"message": "logged in"})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		fail(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	rec := Upload{ContentLength: r.ContentLength}
	var results []*domain.UploadOutcome

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}

		if part.FormName() == "webhook_url" {
			value, err := io.ReadAll(part)
			if err != nil {
				fail(w, http.StatusBadRequest, err.Error())
				return
			}
			rec.WebhookURL = string(value)
			continue
		}

		if part.FormName() != "files[]" {
			continue
		}

		data, err := io.ReadAll(part)
		if err != nil {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}

		name := part.FileName()
		rec.Filenames = append(rec.Filenames, name)
		rec.Sizes = append(rec.Sizes, int64(len(data)))
		results = append(results, s.process(name, data))
	}

	if len(results) == 0 {
		fail(w, http.StatusBadRequest, "no files selected")
		return
	}

	s.mu.Lock()
	s.uploads = append(s.uploads, rec)
	s.mu.Unlock()

	succeeded := 0
	for _, res := range results {
		if res.Success {
			succeeded++
		}
	}

	ok(w, map[string]any{
		"message": fmt.Sprintf("upload finished: %d/%d files processed", succeeded, len(results)),
		"results": results,
	})
}

func (s *Server) process(name string, data []byte) *domain.UploadOutcome {
	if !strings.HasSuffix(strings.ToLower(name), ".zip") {
		return &domain.UploadOutcome{Filename: name, Message: "unsupported format, only .zip files are allowed"}
	}

	if !bytes.HasPrefix(data, zipMagic) {
		return &domain.UploadOutcome{Filename: name, Message: "validation failed: not a zip archive"}
	}

	s.mu.Lock()
	s.files[name] = &domain.RemoteFile{
		Filename: name,
		Size:     int64(len(data)),
		Modified: time.Now().Format(time.DateTime),
	}
	s.mu.Unlock()

	date := ""
	if m := datePattern.FindStringSubmatch(name); m != nil {
		date = m[1] + "-" + m[2] + "-" + m[3]
	}

	return &domain.UploadOutcome{
		Filename: name,
		Success:  true,
		Message:  "processed",
		Data: &domain.OutcomeData{
			Date:            date,
			TotalOperations: len(data),
			People:          1,
		},
	}
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	files := make([]*domain.RemoteFile, 0, len(s.files))
	for _, f := range s.files {
		files = append(files, f)
	}
	s.mu.Unlock()

	sort.Slice(files, func(i, j int) bool {
		if files[i].Modified != files[j].Modified {
			return files[i].Modified > files[j].Modified
		}
		return files[i].Filename < files[j].Filename
	})

	ok(w, map[string]any{"files": files})
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if !strings.HasSuffix(name, ".zip") {
		fail(w, http.StatusBadRequest, "only .zip files can be deleted")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.files[name]; !found {
		fail(w, http.StatusNotFound, "file does not exist")
		return
	}

	delete(s.files, name)
	ok(w, map[string]any{"message": fmt.Sprintf("file %s deleted", name)})
}

func (s *Server) dailyReport(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		fail(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	s.mu.Lock()
	report, found := s.daily[date]
	s.mu.Unlock()

	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "no data for this date"})
		return
	}

	writeJSON(w, http.StatusOK, withSuccess(report))
}

func (s *Server) monthlyReport(w http.ResponseWriter, r *http.Request) {
	ym := chi.URLParam(r, "year_month")
	if _, err := time.Parse("2006-01", ym); err != nil {
		fail(w, http.StatusBadRequest, "invalid month, want YYYY-MM")
		return
	}

	s.mu.Lock()
	report, found := s.monthly[ym]
	s.mu.Unlock()

	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "no data for this month"})
		return
	}

	writeJSON(w, http.StatusOK, withSuccess(report))
}

func (s *Server) sendToWecom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
		Env  string `json:"env"`
	}
	if !decode(w, r, &req) {
		return
	}

	if req.Date == "" {
		fail(w, http.StatusBadRequest, "date is required")
		return
	}

	if req.Env == "" {
		req.Env = "test"
	}

	s.mu.Lock()
	_, found := s.daily[req.Date]
	if found {
		s.sent = append(s.sent, Sent{Date: req.Date, Env: req.Env})
	}
	s.mu.Unlock()

	if !found {
		fail(w, http.StatusNotFound, "no data for this date")
		return
	}

	ok(w, map[string]any{"message": fmt.Sprintf("report sent to %s", req.Env)})
}

func (s *Server) scheduleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sched := s.schedule
	s.mu.Unlock()

	ok(w, map[string]any{"enabled": sched.Enabled, "time": sched.Time})
}

func (s *Server) updateSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.Schedule
	if !decode(w, r, &req) {
		return
	}

	if !timePattern.MatchString(req.Time) {
		fail(w, http.StatusBadRequest, "invalid time")
		return
	}

	s.mu.Lock()
	s.schedule = req
	s.mu.Unlock()

	msg := "schedule disabled"
	if req.Enabled {
		msg = fmt.Sprintf("schedule enabled, reports are sent daily at %s", req.Time)
	}

	ok(w, map[string]any{"message": msg, "enabled": req.Enabled, "time": req.Time})
}

func (s *Server) listLeaders(w http.ResponseWriter, r *http.Request) {
	ok(w, map[string]any{"data": s.TeamLeaders()})
}

func (s *Server) createLeader(w http.ResponseWriter, r *http.Request) {
	leader, valid := decodeLeader(w, r)
	if !valid {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accountTaken(leader.AccountID, 0) {
		fail(w, http.StatusBadRequest, "account already exists")
		return
	}

	s.addLeader(leader)
	ok(w, map[string]any{"message": "added"})
}

func (s *Server) updateLeader(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	leader, valid := decodeLeader(w, r)
	if !valid {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.leader(id)
	if existing == nil || s.accountTaken(leader.AccountID, id) {
		fail(w, http.StatusBadRequest, "update failed, leader not found or account in use")
		return
	}

	existing.TeamName = leader.TeamName
	existing.AccountID = leader.AccountID
	existing.Name = leader.Name

	ok(w, map[string]any{"message": "updated"})
}

func (s *Server) deleteLeader(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.leaders {
		if l.ID == id {
			s.leaders = append(s.leaders[:i], s.leaders[i+1:]...)
			ok(w, map[string]any{"message": "deleted"})
			return
		}
	}

	fail(w, http.StatusNotFound, "leader not found")
}

func (s *Server) addLeader(l domain.TeamLeader) {
	l.ID = s.nextID
	s.nextID++
	s.leaders = append(s.leaders, &l)
}

func (s *Server) leader(id int) *domain.TeamLeader {
	for _, l := range s.leaders {
		if l.ID == id {
			return l
		}
	}

	return nil
}

func (s *Server) accountTaken(account string, exceptID int) bool {
	for _, l := range s.leaders {
		if l.AccountID == account && l.ID != exceptID {
			return true
		}
	}

	return false
}

func decodeLeader(w http.ResponseWriter, r *http.Request) (domain.TeamLeader, bool) {
	var req leaderRequest
	if !decode(w, r, &req) {
		return domain.TeamLeader{}, false
	}

	l := domain.TeamLeader{TeamName: req.TeamName, AccountID: req.AccountID, Name: req.Name}
	l.Normalize()

	if err := l.Validate(); err != nil {
		fail(w, http.StatusBadRequest, "all fields are required")
		return domain.TeamLeader{}, false
	}

	return l, true
}

func withSuccess(v any) map[string]any {
	data, _ := sonic.Marshal(v)

	m := map[string]any{}
	_ = sonic.Unmarshal(data, &m)
	m["success"] = true

	return m
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return false
	}

	if err := sonic.Unmarshal(data, v); err != nil {
		fail(w, http.StatusBadRequest, "invalid json body")
		return false
	}

	return true
}

func ok(w http.ResponseWriter, body map[string]any) {
	body["success"] = true
	writeJSON(w, http.StatusOK, body)
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := sonic.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
