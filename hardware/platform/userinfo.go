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

package platform

import (
	"unicode/utf16"

	"github.com/jetsetilly/goeinstein/logger"
)

// UserInfo selects a field of the user information.
type UserInfo uint32

// list of valid UserInfo values.
const (
	UserFirstName UserInfo = iota
	UserLastName
	UserCompany
	UserAddress
	UserCity
	UserRegion
	UserPostalCode
	UserCountry
	UserPhone
	UserEmail
	numUserInfo
)

// the result of GetUserInfo for an unknown selector.
const userInfoError = 0xffffffff

// SetUserInfo sets a field of the user information.
func (plt *Platform) SetUserInfo(sel UserInfo, value string) {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	plt.user[sel] = value
}

// GetUserInfo implements the primitives.PlatformManager interface. The field
// is written to guest memory as a null terminated UTF-16 big-endian string,
// truncated to fit size bytes. Returns zero on success.
func (plt *Platform) GetUserInfo(selector uint32, address uint32, size uint32) uint32 {
	plt.crit.Lock()
	defer plt.crit.Unlock()

	if UserInfo(selector) >= numUserInfo {
		return userInfoError
	}
	if size < 2 {
		return 0
	}

	s := utf16.Encode([]rune(plt.user[UserInfo(selector)]))
	s = s[:min(len(s), int(size/2)-1)]
	s = append(s, 0)

	for i, c := range s {
		a := address + uint32(i*2)
		if err := plt.mem.WriteB(a, uint8(c>>8)); err != nil {
			plt.log.Log(logger.Allow, "platform", err)
			return userInfoError
		}
		if err := plt.mem.WriteB(a+1, uint8(c)); err != nil {
			plt.log.Log(logger.Allow, "platform", err)
			return userInfoError
		}
	}

	return 0
}
