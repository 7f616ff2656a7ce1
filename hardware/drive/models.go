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

package drive

import "strconv"

// Type identifies a drive model. The numeric values follow Commodore's
// model numbers where one exists.
type Type int

// List of supported drive models.
const (
	TypeNone   Type = 0
	Type1540   Type = 1540
	Type1541   Type = 1541
	Type1541II Type = 1542
	Type1551   Type = 1551
	Type1570   Type = 1570
	Type1571   Type = 1571
	Type1571CR Type = 1573
	Type1581   Type = 1581
	Type2000   Type = 2000
	Type4000   Type = 4000
	Type2031   Type = 2031
	Type2040   Type = 2040
	Type3040   Type = 3040
	Type4040   Type = 4040
	Type1001   Type = 1001
	Type8050   Type = 8050
	Type8250   Type = 8250
	Type9000   Type = 9000
	TypeCMDHD  Type = 4844
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case Type1541II:
		return "1541-II"
	case Type1571CR:
		return "1571CR"
	case TypeCMDHD:
		return "CMD HD"
	}
	return strconv.Itoa(int(t))
}
