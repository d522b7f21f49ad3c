package httpapi

import (
	"encoding/json"
	"net/http"
)

// Home is the fixed acknowledgement clients probe before opening a socket.
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(struct {
		Data string `json:"data"`
	}{Data: "Hello!"})
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
