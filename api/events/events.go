// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events serves the committed-event log over REST.
package events

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/GalaxySciTech/bbb-liquiditystaking/api/restutil"
	"github.com/GalaxySciTech/bbb-liquiditystaking/logdb"
	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db:    db,
		limit: logsLimit,
	}
}

// EventFilter is the request body of the filter endpoint.
type EventFilter struct {
	Names   []string     `json:"names"`
	Origin  *xdc.Address `json:"origin"`
	Range   *Range       `json:"range"`
	Desc    bool         `json:"desc"`
	Options *Options     `json:"options"`
}

type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// FilteredEvent is one committed event in a filter response.
type FilteredEvent struct {
	Seq     uint64        `json:"seq"`
	OpIndex int           `json:"opIndex"`
	Time    uint64        `json:"time"`
	Origin  xdc.Address   `json:"origin"`
	Name    string        `json:"name"`
	Attrs   []FilteredAttr `json:"attrs"`
}

type FilteredAttr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func convertEvent(ev runtime.CommittedEvent) *FilteredEvent {
	attrs := make([]FilteredAttr, 0, len(ev.Attrs))
	for _, a := range ev.Attrs {
		attrs = append(attrs, FilteredAttr{Key: a.Key, Value: a.Value})
	}
	return &FilteredEvent{
		Seq:     ev.Seq,
		OpIndex: ev.OpIndex,
		Time:    ev.Time,
		Origin:  ev.Origin,
		Name:    ev.Name,
		Attrs:   attrs,
	}
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter EventFilter
	if err := restutil.ParseJSON(req.Body, &filter); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if filter.Options != nil && filter.Options.Limit > e.limit {
		return restutil.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}
	if filter.Range != nil && filter.Range.To != 0 && filter.Range.From > filter.Range.To {
		return restutil.BadRequest(fmt.Errorf("range.to must be greater than or equal to range.from"))
	}
	if filter.Options == nil {
		// limit+1 to detect truncation below
		filter.Options = &Options{Limit: e.limit + 1}
	}

	dbFilter := &logdb.Filter{
		Names:  filter.Names,
		Origin: filter.Origin,
		Desc:   filter.Desc,
		Limit:  filter.Options.Limit,
		Offset: filter.Options.Offset,
	}
	if filter.Range != nil {
		to := filter.Range.To
		if to == 0 {
			to = math.MaxInt64
		}
		dbFilter.Range = &logdb.Range{From: filter.Range.From, To: to}
	}

	found, err := e.db.FilterEvents(req.Context(), dbFilter)
	if err != nil {
		return err
	}
	if uint64(len(found)) > e.limit {
		return restutil.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}

	out := make([]*FilteredEvent, 0, len(found))
	for _, ev := range found {
		out = append(out, convertEvent(ev))
	}
	return restutil.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("events_filter").
		HandlerFunc(restutil.WrapHandlerFunc(e.handleFilter))
	sub.Path("/").
		Methods(http.MethodPost).
		Name("events_filter_slash").
		HandlerFunc(restutil.WrapHandlerFunc(e.handleFilter))
}
