// Package update checks whether a newer release of the recognizer is out.
//
// A Checker asks the local backend for its version, then downloads the
// release descriptor and compares the two with CompareVersions. The result is
// published through Result so dialogs can react to it:
//
//	idle -> pending -> update-available | latest | silent-latest | failed
//
// silent-latest is what a background check produces when nothing is new; it
// is the only terminal outcome that is not surfaced.
package update
