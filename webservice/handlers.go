package webservice

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/nickng/chopsticks/model"
	"github.com/nickng/chopsticks/monitor"
	"github.com/nickng/chopsticks/philosopher"
	"github.com/nickng/chopsticks/report"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>Dinner {{.Run}}: {{.Size}} philosophers.</p>
<ul>
{{range .Routes}}<li><a href="{{.}}">{{.}}</a></li>
{{end}}</ul>
</body>
</html>
`))

func (s *Server) indexHandler(w http.ResponseWriter, req *http.Request) *wsError {
	if req.URL.Path != "/" {
		return &wsError{Error: errors.New(req.URL.Path), Message: "Not found", Code: http.StatusNotFound}
	}
	data := struct {
		Title  string
		Run    string
		Size   int
		Routes []string
	}{
		Title:  "chopsticks",
		Run:    s.table.ID,
		Size:   s.table.Monitor.Size(),
		Routes: []string{"/state", "/dot", "/dot?graph=table", "/cfsm", "/migo", "/events"},
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		return &wsError{Error: err, Message: "Template execute failed", Code: http.StatusInternalServerError}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
	return nil
}

func (s *Server) stateHandler(w http.ResponseWriter, req *http.Request) *wsError {
	if e := requireGet(req); e != nil {
		return e
	}
	reply := struct {
		Run          string             `json:"run"`
		Snapshot     monitor.Snapshot   `json:"snapshot"`
		Philosophers []philosopher.Stat `json:"philosophers"`
	}{
		Run:          s.table.ID,
		Snapshot:     s.table.Monitor.Snapshot(),
		Philosophers: s.table.Stats(),
	}
	return writeJSON(w, &reply)
}

// dotHandler draws the wait-for graph, or the seating plan with
// ?graph=table.
func (s *Server) dotHandler(w http.ResponseWriter, req *http.Request) *wsError {
	if e := requireGet(req); e != nil {
		return e
	}
	var (
		dot *model.Dot
		err error
	)
	graph := req.URL.Query().Get("graph")
	switch graph {
	case "", "waitfor":
		graph = "waitfor"
		dot, err = model.NewWaitForDot(s.table.Monitor.Snapshot())
	case "table":
		dot, err = model.NewTableDot(s.table.Monitor.Size())
	default:
		return &wsError{Error: errors.New(graph), Message: "Unknown graph", Code: http.StatusBadRequest}
	}
	if err != nil {
		return &wsError{Error: err, Message: "Cannot draw graph", Code: http.StatusInternalServerError}
	}
	reply := struct {
		Graph string `json:"graph"`
		Dot   string `json:"dot"`
	}{
		Graph: graph,
		Dot:   dot.String(),
	}
	return writeJSON(w, &reply)
}

// eventsHandler lists recent events, the last ?limit of them if given.
func (s *Server) eventsHandler(w http.ResponseWriter, req *http.Request) *wsError {
	if e := requireGet(req); e != nil {
		return e
	}
	if s.recorder == nil {
		return &wsError{Error: errors.New("no recorder"), Message: "Events not recorded", Code: http.StatusNotFound}
	}
	events := s.recorder.Events()
	if v := req.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return &wsError{Error: errors.New(v), Message: "Bad limit", Code: http.StatusBadRequest}
		}
		if limit < len(events) {
			events = events[len(events)-limit:]
		}
	}
	if events == nil {
		events = []report.Event{}
	}
	reply := struct {
		Run    string         `json:"run"`
		Total  int            `json:"total"`
		Events []report.Event `json:"events"`
	}{
		Run:    s.table.ID,
		Total:  s.recorder.Total(),
		Events: events,
	}
	return writeJSON(w, &reply)
}
