package httpserver

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func parseID(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

func optionalString(v []string, ok bool) *string {
	if !ok || len(v) == 0 || v[0] == "" {
		return nil
	}
	s := v[0]
	return &s
}

func optionalFloat(v []string, ok bool) (*float64, error) {
	s := optionalString(v, ok)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optionalInt(v []string, ok bool) (*int, error) {
	s := optionalString(v, ok)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalUint(v []string, ok bool) (*uint, error) {
	s := optionalString(v, ok)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		return nil, err
	}
	u := uint(n)
	return &u, nil
}
