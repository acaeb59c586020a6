package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"foodgram-go/internal/domain/errs"
	"foodgram-go/internal/domain/user"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func parseIDParam(r *http.Request, name string) (int64, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

func parseCSV(value string) []string {
	parts := strings.Split(value, ",")
	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

// parseMulti accepts both repeated keys (?tags=a&tags=b) and comma lists.
func parseMulti(values []string) []string {
	return parseCSV(strings.Join(values, ","))
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

func parseFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	default:
		return false, fmt.Errorf("invalid flag")
	}
}

func parsePage(r *http.Request) (user.Page, error) {
	query := r.URL.Query()
	limit, err := parseIntParam(query.Get("limit"), defaultPageLimit)
	if err != nil {
		return user.Page{}, errs.Invalid("limit", "must be a non-negative integer")
	}
	if limit == 0 || limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		return user.Page{}, errs.Invalid("offset", "must be a non-negative integer")
	}
	return user.Page{Limit: limit, Offset: offset}, nil
}

func parseRecipesLimit(r *http.Request) (int, error) {
	limit, err := parseIntParam(r.URL.Query().Get("recipes_limit"), 0)
	if err != nil {
		return 0, errs.Invalid("recipes_limit", "must be a non-negative integer")
	}
	return limit, nil
}
