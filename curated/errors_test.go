// This file is part of TrueDrive.
//
// TrueDrive is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// TrueDrive is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TrueDrive.  If not, see <https://www.gnu.org/licenses/>.

package curated_test

import (
	"testing"

	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/test"
)

const testPattern = "test error: %s"

func TestIs(t *testing.T) {
	err := curated.Errorf(testPattern, "detail")

	test.ExpectedSuccess(t, curated.IsAny(err))
	test.ExpectedSuccess(t, curated.Is(err, testPattern))
	test.ExpectedFailure(t, curated.Is(err, "some other pattern: %s"))

	// wrapping the error means Is() no longer matches but Has() does
	wrapped := curated.Errorf("outer: %v", err)
	test.ExpectedFailure(t, curated.Is(wrapped, testPattern))
	test.ExpectedSuccess(t, curated.Has(wrapped, testPattern))
}

func TestDeduplication(t *testing.T) {
	err := curated.Errorf("drive: %v", curated.Errorf("drive: %v", curated.Errorf("no such unit")))
	test.Equate(t, err.Error(), "drive: no such unit")
}

func TestDeduplicationDeepChain(t *testing.T) {
	// repeated parts are removed wherever they occur in the chain, not
	// only at the head
	err := curated.Errorf("snapshot: %v",
		curated.Errorf("snapshot: %v",
			curated.Errorf("module %s: %v", "TEST",
				curated.Errorf("module %s: %v", "TEST",
					curated.Errorf("short read")))))
	test.Equate(t, err.Error(), "snapshot: module TEST: short read")
}

func TestUncurated(t *testing.T) {
	test.ExpectedFailure(t, curated.IsAny(nil))
	test.ExpectedFailure(t, curated.Is(nil, testPattern))
	test.ExpectedFailure(t, curated.Has(nil, testPattern))
}
