package gpu

import (
	"sort"
	"strconv"

	"codeberg.org/mutker/errbridge/internal/domain"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// ReturnDomain identifies the NVML return code error domain.
const ReturnDomain domain.ID = "nvml.Return"

// Return is an NVML failure code raised across the cgo boundary.
type Return nvml.Return

type returnCase struct {
	name    string
	message string
}

var returnCases = map[Return]returnCase{
	Return(nvml.ERROR_UNINITIALIZED):           {"ERROR_UNINITIALIZED", "NVML was not initialized"},
	Return(nvml.ERROR_INVALID_ARGUMENT):        {"ERROR_INVALID_ARGUMENT", "invalid argument"},
	Return(nvml.ERROR_NOT_SUPPORTED):           {"ERROR_NOT_SUPPORTED", "operation not supported by the device"},
	Return(nvml.ERROR_NO_PERMISSION):           {"ERROR_NO_PERMISSION", "insufficient permissions"},
	Return(nvml.ERROR_ALREADY_INITIALIZED):     {"ERROR_ALREADY_INITIALIZED", "NVML already initialized"},
	Return(nvml.ERROR_NOT_FOUND):               {"ERROR_NOT_FOUND", "not found"},
	Return(nvml.ERROR_INSUFFICIENT_SIZE):       {"ERROR_INSUFFICIENT_SIZE", "insufficient buffer size"},
	Return(nvml.ERROR_INSUFFICIENT_POWER):      {"ERROR_INSUFFICIENT_POWER", "insufficient external power"},
	Return(nvml.ERROR_DRIVER_NOT_LOADED):       {"ERROR_DRIVER_NOT_LOADED", "NVIDIA driver is not loaded"},
	Return(nvml.ERROR_TIMEOUT):                 {"ERROR_TIMEOUT", "timeout"},
	Return(nvml.ERROR_IRQ_ISSUE):               {"ERROR_IRQ_ISSUE", "interrupt request issue"},
	Return(nvml.ERROR_LIBRARY_NOT_FOUND):       {"ERROR_LIBRARY_NOT_FOUND", "NVML shared library not found"},
	Return(nvml.ERROR_FUNCTION_NOT_FOUND):      {"ERROR_FUNCTION_NOT_FOUND", "function not found in NVML library"},
	Return(nvml.ERROR_CORRUPTED_INFOROM):       {"ERROR_CORRUPTED_INFOROM", "corrupted inforom"},
	Return(nvml.ERROR_GPU_IS_LOST):             {"ERROR_GPU_IS_LOST", "GPU is lost"},
	Return(nvml.ERROR_RESET_REQUIRED):          {"ERROR_RESET_REQUIRED", "GPU requires reset"},
	Return(nvml.ERROR_OPERATING_SYSTEM):        {"ERROR_OPERATING_SYSTEM", "operating system call failed"},
	Return(nvml.ERROR_LIB_RM_VERSION_MISMATCH): {"ERROR_LIB_RM_VERSION_MISMATCH", "driver and library version mismatch"},
	Return(nvml.ERROR_IN_USE):                  {"ERROR_IN_USE", "GPU is in use"},
	Return(nvml.ERROR_MEMORY):                  {"ERROR_MEMORY", "insufficient memory"},
	Return(nvml.ERROR_NO_DATA):                 {"ERROR_NO_DATA", "no data"},
	Return(nvml.ERROR_UNKNOWN):                 {"ERROR_UNKNOWN", "unknown error"},
}

func init() {
	cases := make([]domain.Value, 0, len(returnCases))
	for _, ret := range KnownReturns() {
		cases = append(cases, ret)
	}
	if err := domain.Register(cases...); err != nil {
		panic(err)
	}
}

// KnownReturns lists the NVML failure codes with a registered case, in
// ascending code order.
func KnownReturns() []Return {
	known := make([]Return, 0, len(returnCases))
	for ret := range returnCases {
		known = append(known, ret)
	}
	sort.Slice(known, func(i, j int) bool { return known[i] < known[j] })

	return known
}

func (r Return) Domain() domain.ID {
	return ReturnDomain
}

func (r Return) Case() string {
	if c, ok := returnCases[r]; ok {
		return c.name
	}

	return "ERROR_" + strconv.Itoa(int(r))
}

func (r Return) Error() string {
	if c, ok := returnCases[r]; ok {
		return c.message
	}

	return nvml.ErrorString(nvml.Return(r))
}

func (r Return) GetMessage() {
	domain.Report(r)
}

// IsNVMLSuccess checks if a Return value indicates success
func IsNVMLSuccess(ret nvml.Return) bool {
	return ret == nvml.SUCCESS
}
