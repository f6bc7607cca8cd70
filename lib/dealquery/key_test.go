// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

package dealquery

import (
	"testing"

	"github.com/dealdesk-io/dealdesk/lib/schema/deal"
)

func TestKeyOptionsOmitsEmptyBounds(t *testing.T) {
	options := Key{MaxAmount: "500000"}.Options()
	if options.MinAmount != nil {
		t.Errorf("MinAmount = %v for empty text, want nil", *options.MinAmount)
	}
	if options.MaxAmount == nil || *options.MaxAmount != 500000 {
		t.Errorf("MaxAmount = %v, want 500000", options.MaxAmount)
	}
	if options.Search != "" {
		t.Errorf("Search = %q, want empty", options.Search)
	}
}

func TestKeyOptionsIgnoresUnparsableAmounts(t *testing.T) {
	options := Key{MinAmount: "25k", MaxAmount: "1,000,000"}.Options()
	if options.MinAmount != nil || options.MaxAmount != nil {
		t.Error("half-typed amount text must mean no bound, not zero")
	}
}

func TestKeyOptionsCarriesFiltersAndLimit(t *testing.T) {
	options := Key{
		Search:  "cedar",
		Product: deal.ProductEquipment,
		Sort:    deal.SortProbability,
		Order:   "asc",
	}.Options()
	if options.Search != "cedar" || options.Product != deal.ProductEquipment {
		t.Errorf("options = %+v", options)
	}
	if options.Sort != deal.SortProbability || options.Order != "asc" {
		t.Errorf("sort = %s %s", options.Sort, options.Order)
	}
	if options.Limit != 100 {
		t.Errorf("Limit = %d, want the board page size", options.Limit)
	}
}
