package webservice

import (
	"bytes"
	"net/http"

	"github.com/nickng/chopsticks/model"
)

func (s *Server) cfsmHandler(w http.ResponseWriter, req *http.Request) *wsError {
	if e := requireGet(req); e != nil {
		return e
	}
	cfsms, err := model.NewCFSMs(s.table.Monitor.Size())
	if err != nil {
		return &wsError{Error: err, Message: "CFSM construction failed", Code: http.StatusInternalServerError}
	}
	bufCfsm := new(bytes.Buffer)
	cfsms.WriteTo(bufCfsm)
	bufSummary := new(bytes.Buffer)
	cfsms.PrintSummary(bufSummary)
	reply := struct {
		CFSM    string `json:"CFSM"`
		Summary string `json:"summary"`
	}{
		CFSM:    bufCfsm.String(),
		Summary: bufSummary.String(),
	}
	return writeJSON(w, &reply)
}
