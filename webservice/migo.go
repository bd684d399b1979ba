package webservice

import (
	"bytes"
	"net/http"

	"github.com/nickng/chopsticks/model"
)

func (s *Server) migoHandler(w http.ResponseWriter, req *http.Request) *wsError {
	if e := requireGet(req); e != nil {
		return e
	}
	prog, err := model.NewMigo(s.table.Monitor.Size())
	if err != nil {
		return &wsError{Error: err, Message: "MiGo construction failed", Code: http.StatusInternalServerError}
	}
	prog.Simplify()
	buf := new(bytes.Buffer)
	prog.WriteTo(buf)
	reply := struct {
		MiGo string `json:"MiGo"`
	}{
		MiGo: buf.String(),
	}
	return writeJSON(w, &reply)
}
