package ral

import "fmt"

// Instance identifies one of the two USB controller register blocks.
type Instance uint8

// Controller instances. The set is closed; no other value names hardware.
const (
	USB1 Instance = iota
	USB2

	instanceCount
)

// InstanceCount is the number of controller instances.
const InstanceCount = int(instanceCount)

// Register block base addresses (i.MX RT 1060 reference manual, USB chapter).
const (
	usb1Base uintptr = 0x402E0000
	usb2Base uintptr = 0x402E0200
)

// Instances returns every controller instance in index order.
func Instances() [InstanceCount]Instance {
	return [InstanceCount]Instance{USB1, USB2}
}

// Valid reports whether i is one of the known controller instances.
func (i Instance) Valid() bool {
	return i < instanceCount
}

// Base returns the register block base address of the instance.
// Base panics if the instance is not valid.
func (i Instance) Base() uintptr {
	switch i {
	case USB1:
		return usb1Base
	case USB2:
		return usb2Base
	}
	panic(fmt.Sprintf("ral: no register block for %v", i))
}

// String returns the instance name.
func (i Instance) String() string {
	switch i {
	case USB1:
		return "USB1"
	case USB2:
		return "USB2"
	default:
		return fmt.Sprintf("Instance(%d)", uint8(i))
	}
}

// ParseInstance returns the instance named s ("usb1", "USB2", ...).
func ParseInstance(s string) (Instance, bool) {
	switch s {
	case "usb1", "USB1":
		return USB1, true
	case "usb2", "USB2":
		return USB2, true
	}
	return 0, false
}

// Register is the byte offset of a controller register within its block.
type Register uintptr

// Device-mode controller registers.
const (
	USBCMD         Register = 0x140 // USB Command
	USBSTS         Register = 0x144 // USB Status
	USBINTR        Register = 0x148 // Interrupt Enable
	FRINDEX        Register = 0x14C // Frame Index
	DEVICEADDR     Register = 0x154 // Device Address
	ASYNCLISTADDR  Register = 0x158 // Endpoint List Address (ENDPTLISTADDR in device mode)
	BURSTSIZE      Register = 0x160 // Programmable Burst Size
	ENDPTNAK       Register = 0x178 // Endpoint NAK
	PORTSC1        Register = 0x184 // Port Status & Control
	OTGSC          Register = 0x1A4 // On-The-Go Status & Control
	USBMODE        Register = 0x1A8 // USB Device Mode
	ENDPTSETUPSTAT Register = 0x1AC // Endpoint Setup Status
	ENDPTPRIME     Register = 0x1B0 // Endpoint Prime
	ENDPTFLUSH     Register = 0x1B4 // Endpoint Flush
	ENDPTSTAT      Register = 0x1B8 // Endpoint Status
	ENDPTCOMPLETE  Register = 0x1BC // Endpoint Complete
	ENDPTCTRL0     Register = 0x1C0 // Endpoint Control 0
)

// ENDPTLISTADDR is the device-mode name of ASYNCLISTADDR.
const ENDPTLISTADDR = ASYNCLISTADDR

var registerNames = map[Register]string{
	USBCMD:         "USBCMD",
	USBSTS:         "USBSTS",
	USBINTR:        "USBINTR",
	FRINDEX:        "FRINDEX",
	DEVICEADDR:     "DEVICEADDR",
	ASYNCLISTADDR:  "ASYNCLISTADDR",
	BURSTSIZE:      "BURSTSIZE",
	ENDPTNAK:       "ENDPTNAK",
	PORTSC1:        "PORTSC1",
	OTGSC:          "OTGSC",
	USBMODE:        "USBMODE",
	ENDPTSETUPSTAT: "ENDPTSETUPSTAT",
	ENDPTPRIME:     "ENDPTPRIME",
	ENDPTFLUSH:     "ENDPTFLUSH",
	ENDPTSTAT:      "ENDPTSTAT",
	ENDPTCOMPLETE:  "ENDPTCOMPLETE",
	ENDPTCTRL0:     "ENDPTCTRL0",
}

// String returns the register name, or its offset if unnamed.
func (r Register) String() string {
	if name, ok := registerNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Register(%#x)", uintptr(r))
}

// EndpointListAddrMask selects the EPBASE field of ENDPTLISTADDR. The
// hardware ignores the low 11 bits of a written endpoint list address.
const EndpointListAddrMask uint32 = 0xFFFFF800

// Bus performs typed register accesses on a controller instance.
type Bus interface {
	// Read32 returns the current value of reg on inst.
	Read32(inst Instance, reg Register) uint32

	// Write32 stores val into reg on inst.
	Write32(inst Instance, reg Register, val uint32)
}

// Modify clears then sets bits of reg on inst with a read-modify-write.
func Modify(bus Bus, inst Instance, reg Register, clear, set uint32) {
	bus.Write32(inst, reg, bus.Read32(inst, reg)&^clear|set)
}
