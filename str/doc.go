// SPDX-License-Identifier: Apache-2.0

// Package str provides zero-copy text and binary parsing over borrowed bytes.
//
// A String is a view. It never owns its memory, so it is only valid while the
// memory it points to is: a Go string, a caller buffer, or an allocation from a
// region.Arena that has not been rewound. Slicing narrows the view and never copies.
//
// The consuming methods advance a *String from the front:
//
//	in := str.Literal("GET /index.html HTTP/1.1\r\nHost: x\r\n")
//	method := in.ConsumeUntil(' ')
//	path := in.ConsumeUntil(' ')
//	version := in.ConsumeLine()
//
// Builder is the owning, growable counterpart. It keeps a NUL terminator after its
// contents so they can be handed to C-style consumers without copying.
package str
