// Package sysinfo reports best-effort facts about the machine a benchmark
// ran on.
package sysinfo

import (
	"fmt"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// Swapped in tests.
var (
	brandName    = func() string { return cpuid.CPU.BrandName }
	logicalCores = func() int { return cpuid.CPU.LogicalCores }
)

// CPUBrand returns the processor brand string, for example
// "AMD Ryzen 9 5950X 16-Core Processor". It returns "" when the CPU does
// not report one.
func CPUBrand() string {
	return strings.Join(strings.Fields(brandName()), " ")
}

// CPUSummary is the brand string followed by the logical core count, or ""
// when the brand is unknown.
func CPUSummary() string {
	brand := CPUBrand()
	if brand == "" {
		return ""
	}
	if n := logicalCores(); n > 0 {
		return fmt.Sprintf("%s (%d threads)", brand, n)
	}
	return brand
}
