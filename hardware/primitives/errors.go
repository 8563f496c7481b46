// This file is part of Goeinstein.
//
// Goeinstein is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Goeinstein is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Goeinstein.  If not, see <https://www.gnu.org/licenses/>.

package primitives

// Error codes returned to the guest. The values are those of the guest
// operating system and must not be changed.
const (
	ErrFlashAddressOutOfRange int32 = -10562
	ErrBadPCMCIAPowerSpec     int32 = -10005
	ErrSoundHardwareInfo      int32 = -30009
	ErrTabletFingerInput      int32 = -56008
)
