// Package ral is the register access layer for the two USB controller
// instances.
//
// [Instance] is a closed set: [USB1] and [USB2] are the only values that name
// hardware. [Register] values are byte offsets into an instance's register
// block, and a [Bus] performs typed 32-bit reads and writes on them.
//
// Two buses are provided. [Memory] is a simulated register file with a write
// journal, used on the host. MMIO, built only under TinyGo, reaches the real
// registers through runtime/volatile.
package ral
