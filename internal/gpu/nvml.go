package gpu

import (
	"sync/atomic"

	"codeberg.org/mutker/errbridge/internal/shim"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// Operation names used when invoking NVML through the shim.
const (
	InitName        = "nvml.init"
	ShutdownName    = "nvml.shutdown"
	DeviceCountName = "nvml.device_count"
	DeviceNameName  = "nvml.device_name"
)

// Library is the subset of NVML the client calls. The default
// implementation goes through cgo; tests substitute their own.
type Library interface {
	Init() nvml.Return
	Shutdown() nvml.Return
	DeviceGetCount() (int, nvml.Return)
	DeviceName(index int) (string, nvml.Return)
}

type nvmlLibrary struct{}

func (nvmlLibrary) Init() nvml.Return {
	return nvml.Init()
}

func (nvmlLibrary) Shutdown() nvml.Return {
	return nvml.Shutdown()
}

func (nvmlLibrary) DeviceGetCount() (int, nvml.Return) {
	return nvml.DeviceGetCount()
}

func (nvmlLibrary) DeviceName(index int) (string, nvml.Return) {
	device, ret := nvml.DeviceGetHandleByIndex(index)
	if !IsNVMLSuccess(ret) {
		return "", ret
	}

	return device.GetName()
}

// Client exposes NVML calls as shim operations. Every non-success return
// code is raised into the error slot as a Return case.
type Client struct {
	lib         Library
	initialized atomic.Bool
}

// New returns a client backed by the system NVML library.
func New() *Client {
	return NewWithLibrary(nvmlLibrary{})
}

// NewWithLibrary returns a client backed by lib.
func NewWithLibrary(lib Library) *Client {
	return &Client{lib: lib}
}

// Init initializes NVML. Initializing twice is not an error.
func (c *Client) Init() shim.Operation[struct{}] {
	return func(_ shim.Context, slot *shim.Slot) struct{} {
		if c.initialized.Load() {
			return struct{}{}
		}
		if ret := c.lib.Init(); !IsNVMLSuccess(ret) {
			slot.Raise(Return(ret))
			return struct{}{}
		}
		c.initialized.Store(true)

		return struct{}{}
	}
}

// Shutdown releases NVML. Shutting down an uninitialized client is a no-op.
func (c *Client) Shutdown() shim.Operation[struct{}] {
	return func(_ shim.Context, slot *shim.Slot) struct{} {
		if !c.initialized.Load() {
			return struct{}{}
		}
		if ret := c.lib.Shutdown(); !IsNVMLSuccess(ret) {
			slot.Raise(Return(ret))
			return struct{}{}
		}
		c.initialized.Store(false)

		return struct{}{}
	}
}

// DeviceCount returns the number of visible devices.
func (c *Client) DeviceCount() shim.Operation[int] {
	return func(_ shim.Context, slot *shim.Slot) int {
		if !c.initialized.Load() {
			slot.Raise(Return(nvml.ERROR_UNINITIALIZED))
			return 0
		}

		count, ret := c.lib.DeviceGetCount()
		if !IsNVMLSuccess(ret) {
			slot.Raise(Return(ret))
			return 0
		}

		return count
	}
}

// DeviceName returns the product name of the device at index.
func (c *Client) DeviceName(index int) shim.Operation[string] {
	return func(_ shim.Context, slot *shim.Slot) string {
		if !c.initialized.Load() {
			slot.Raise(Return(nvml.ERROR_UNINITIALIZED))
			return ""
		}
		if index < 0 {
			slot.Raise(Return(nvml.ERROR_INVALID_ARGUMENT))
			return ""
		}

		name, ret := c.lib.DeviceName(index)
		if !IsNVMLSuccess(ret) {
			slot.Raise(Return(ret))
			return ""
		}

		return name
	}
}
