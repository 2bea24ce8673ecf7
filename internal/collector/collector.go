// Package collector implements the canned collector-registration and
// terraform-provider compatibility endpoints. Neither carries real logic:
// they exist only so agents and terraform providers configured against this
// receiver can complete their startup handshake, per spec.md's explicit
// non-goal around the terraform field CRUD surface and the collector
// register/heartbeat endpoints.
//
// Grounded on original_source/.../router/api.rs (register/heartbeat) and
// original_source/.../router/terraform.rs (the minimal info stub; the field
// CRUD surface from that file is out of scope and intentionally not ported).
package collector

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

type registerResponse struct {
	CollectorCredentialID  string `json:"collector_credential_id"`
	CollectorCredentialKey string `json:"collector_credential_key"`
	CollectorID            string `json:"collector_id"`
	CollectorName          string `json:"collector_name"`
}

// Register handles POST /api/v1/collector/register. It requires a Basic
// Authorization header whose value decodes as base64 — the credentials
// themselves are never checked, only their shape — and returns a fixed
// collector identity on success.
func Register(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	token, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := base64.StdEncoding.DecodeString(token); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(registerResponse{
		CollectorCredentialID:  "eeeQShpym1Szkza33333",
		CollectorCredentialKey: "eeef3dD3nBUorbP6s3NFTya0JwLZ0FosrIsRREumZoWXEt7szGoJViwbdc5lfHq73Slsv7OctRzlvTfMLyexLULI8mYe8gFhmUZS75BhgcvqFZEfWb2Z6OsFnOxmAAAA",
		CollectorID:            "000000000111AAA3",
		CollectorName:          "collector-test-123456123123",
	})
}

// Heartbeat handles POST /api/v1/collector/{id}/heartbeat: always 204.
func Heartbeat(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type terraformInfoResponse struct {
	Source struct {
		URL string `json:"url"`
	} `json:"source"`
}

// TerraformInfo handles GET /terraform, the only terraform-provider
// compatibility endpoint this receiver carries; the field CRUD endpoints
// are out of scope.
func TerraformInfo(sourceURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := terraformInfoResponse{}
		resp.Source.URL = sourceURL
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
