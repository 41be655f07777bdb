// Package fake
// Author: momentics <momentics@gmail.com>
//
// Test doubles for the allocator seam.
package fake
