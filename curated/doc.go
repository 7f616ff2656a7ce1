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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Packages in this project that return distinguishable
// error conditions export the pattern as a constant. For example, the drive
// package exports the pattern it uses when an image's format cannot be used
// with the drive model at a unit:
//
//	err := drives.Attach(img, 8, 0)
//	if curated.Is(err, drive.ErrIncompatibleFormat) {
//		fmt.Println("wrong image for this drive")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. This is useful at the outermost layers of the program
// where errors from the drive or snapshot packages will have been wrapped by
// intervening layers.
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). Put another way, it returns true if the error is
// 'curated' and false if the error is 'uncurated'.
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. The practical advantage of this is that it
// alleviates the problem of when and how to wrap errors as they pass up
// through the layers of the program.
package curated
