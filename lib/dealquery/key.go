// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealquery

import (
	"strconv"

	"github.com/dealdesk-io/dealdesk/lib/api"
	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

// listLimit is the page size requested for board queries. The board
// shows the whole pipeline at once, so it asks for a generous page
// rather than walking cursors.
const listLimit = 100

// Key identifies one deal-list query. The amount bounds are kept as
// the raw text the user typed: an empty string means "no bound" and
// two different spellings of the same number ("500000" vs "500000.0")
// are deliberately distinct keys, mirroring what the user sees in the
// filter bar.
//
// Key is comparable and used as a map key; all fields must remain
// comparable types.
type Key struct {
	Search    string
	Product   deal.Product
	MinAmount string
	MaxAmount string
	Sort      deal.SortField
	Order     string
}

// Options translates the key into list-call options. Amount text that
// fails to parse is treated as no bound — the filter bar feeds back
// validation separately, and a half-typed number must not become a
// zero bound.
func (key Key) Options() api.ListDealsOptions {
	options := api.ListDealsOptions{
		Search:  key.Search,
		Product: key.Product,
		Sort:    key.Sort,
		Order:   key.Order,
		Limit:   listLimit,
	}
	if amount, err := strconv.ParseFloat(key.MinAmount, 64); err == nil && key.MinAmount != "" {
		options.MinAmount = &amount
	}
	if amount, err := strconv.ParseFloat(key.MaxAmount, 64); err == nil && key.MaxAmount != "" {
		options.MaxAmount = &amount
	}
	return options
}
