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

// Package prefs facilitates the storage of preferences to disk. Preference
// values are typed (Bool, String, Int) and safe to read from any goroutine.
//
// Values are added to a Disk instance with a key:
//
//	dsk, err := prefs.NewDisk(paths.ResourcePath("preferences"))
//	var logMask prefs.Int
//	err = dsk.Add("primitives.logmask", &logMask)
//	err = dsk.Load()
//
// The file format is a list of "key :: value" lines, preceded by the
// WarningBoilerPlate line. Entries in the file that have not been added to the
// Disk instance are preserved when the file is saved.
//
// Preferences can also be specified on the command line, with a string of the
// form "key::value; key::value". See PushCommandLineStack(). Command line
// values take priority over values loaded from the file.
package prefs
