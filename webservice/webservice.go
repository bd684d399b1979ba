// Package webservice runs a webservice to display the state of a dinner.
//
// Every route except the index replies with JSON.
package webservice // "github.com/nickng/chopsticks/webservice"

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type wsError struct {
	Error   error
	Message string
	Code    int
}

type wsHandler func(http.ResponseWriter, *http.Request) *wsError

func (fn wsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e := fn(w, r)
	if e == nil {
		return
	}
	if e.Code == http.StatusInternalServerError {
		NewErrInternal(e.Error, e.Message).Report(w)
		return
	}
	http.Error(w, fmt.Sprintf("%s: %s", e.Message, e.Error), e.Code)
}

var errMethod = fmt.Errorf("only %s is supported", http.MethodGet)

func requireGet(req *http.Request) *wsError {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return &wsError{Error: errMethod, Message: "Bad method " + req.Method, Code: http.StatusMethodNotAllowed}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, reply interface{}) *wsError {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		return &wsError{Error: err, Message: "Cannot encode reply", Code: http.StatusInternalServerError}
	}
	return nil
}
