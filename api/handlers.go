package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hkanpak21/funhash/avalanche"
	"github.com/hkanpak21/funhash/chain"
	"github.com/hkanpak21/funhash/ikh"
	"github.com/hkanpak21/funhash/steptable"
)

type textRequest struct {
	Text string `json:"text"`
	// StripNonAlpha overrides the server policy when set.
	StripNonAlpha *bool `json:"strip_non_alpha,omitempty"`
}

type digestResponse struct {
	Digest     ikh.Digest `json:"digest"`
	Normalized string     `json:"normalized"`
}

type stepsResponse struct {
	Normalized string             `json:"normalized"`
	Steps      []steptable.Record `json:"steps"`
}

type avalancheRequest struct {
	A             string `json:"a"`
	B             string `json:"b"`
	StripNonAlpha *bool  `json:"strip_non_alpha,omitempty"`
}

type avalancheResponse struct {
	avalanche.Report

	BitsA   string `json:"bits_a"`
	BitsB   string `json:"bits_b"`
	Changed []int  `json:"changed"`
}

type blockRequest struct {
	Data string `json:"data"`
}

type chainResponse struct {
	Blocks   []chain.Block  `json:"blocks"`
	Statuses []chain.Status `json:"statuses"`
	Valid    bool           `json:"valid"`
}

func (s *Server) hasherFor(strip *bool) ikh.Hasher {
	if strip == nil {
		return s.hasher
	}

	return ikh.Hasher{StripNonAlpha: *strip}
}

func (*Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) digest(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	h := s.hasherFor(req.StripNonAlpha)

	return c.JSON(http.StatusOK, digestResponse{
		Digest:     h.Sum(req.Text),
		Normalized: h.Normalize(req.Text),
	})
}

func (s *Server) steps(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	h := s.hasherFor(req.StripNonAlpha)

	return c.JSON(http.StatusOK, stepsResponse{
		Normalized: h.Normalize(req.Text),
		Steps:      steptable.Records(h.Steps(req.Text)),
	})
}

func (s *Server) avalanche(c echo.Context) error {
	var req avalancheRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	r := avalanche.CompareText(s.hasherFor(req.StripNonAlpha), req.A, req.B)

	return c.JSON(http.StatusOK, avalancheResponse{
		Report:  r,
		BitsA:   avalanche.BitString(r.A),
		BitsB:   avalanche.BitString(r.B),
		Changed: r.Changed(),
	})
}

// view must be called with s.mu held.
func (s *Server) view() chainResponse {
	sts := s.chain.Validate()

	return chainResponse{
		Blocks:   s.chain.Blocks(),
		Statuses: sts,
		Valid:    sts[len(sts)-1].Valid,
	}
}

// commit applies mutate to a copy of the chain, saves the
// copy and only then makes it current. Must be called with
// s.mu held.
func (s *Server) commit(
	c echo.Context,
	mutate func(*chain.Chain) error,
) error {
	next, err := chain.Restore(s.hasher, s.chain.Blocks())
	if err != nil {
		return err
	}

	if err := mutate(next); err != nil {
		return err
	}

	if err := chain.Save(c.Request().Context(), s.store, next); err != nil {
		return echo.NewHTTPError(
			http.StatusInternalServerError, "saving chain",
		).SetInternal(err)
	}

	s.chain = next

	return nil
}

func (s *Server) chainView(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return c.JSON(http.StatusOK, s.view())
}

func (s *Server) addBlock(c echo.Context) error {
	var req blockRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var b chain.Block

	err := s.commit(c, func(ch *chain.Chain) error {
		b = ch.Add(req.Data)

		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, b)
}

func (s *Server) editBlock(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(
			http.StatusBadRequest, "index must be an integer",
		)
	}

	var req blockRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.commit(c, func(ch *chain.Chain) error {
		if err := ch.Edit(index, req.Data); err != nil {
			if errors.Is(err, chain.ErrIndexOutOfRange) {
				return echo.NewHTTPError(http.StatusNotFound, err.Error())
			}

			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, s.view())
}

func (s *Server) resetChain(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.commit(c, func(ch *chain.Chain) error {
		ch.Reset()

		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, s.view())
}
