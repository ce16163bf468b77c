// Package memory implements the tiered address space of the mvm virtual
// machine.
//
// The address space is byte addressable and little-endian. Address 0 is
// the null address. Addresses below FRAME_SIZE are frame-relative: they are
// resolved at access time as the stack pointer minus the address. All other
// addresses are linear, first into the fixed size fast region, and past its
// end into individually allocated pages.
//
// The return-address stack lives at the top of the fast region and grows
// down in 8 byte slots.
package memory
