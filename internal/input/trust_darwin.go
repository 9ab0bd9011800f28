//go:build darwin

package input

// #cgo LDFLAGS: -framework ApplicationServices
// #include <ApplicationServices/ApplicationServices.h>
//
// static int snag_axTrusted(int prompt) {
//     if (!prompt) {
//         return AXIsProcessTrusted() ? 1 : 0;
//     }
//     const void *keys[] = { kAXTrustedCheckOptionPrompt };
//     const void *values[] = { kCFBooleanTrue };
//     CFDictionaryRef opts = CFDictionaryCreate(NULL, keys, values, 1,
//         &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
//     int trusted = AXIsProcessTrustedWithOptions(opts) ? 1 : 0;
//     CFRelease(opts);
//     return trusted;
// }
import "C"

type axAuthorizer struct{}

// NewAuthorizer returns the macOS accessibility-trust check. Injecting key
// events requires the user to grant the binary Accessibility access in
// System Settings; Prompt raises the system dialog that deep-links there.
func NewAuthorizer() Authorizer { return axAuthorizer{} }

func (axAuthorizer) Trusted() bool { return C.snag_axTrusted(0) == 1 }
func (axAuthorizer) Prompt()       { C.snag_axTrusted(1) }
