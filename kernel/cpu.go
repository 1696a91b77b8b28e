package kernel

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features returns the SIMD extensions the host CPU reports.
func Features() []string {
	var out []string

	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			ok   bool
		}{
			{"SSE2", cpu.X86.HasSSE2},
			{"SSE4.1", cpu.X86.HasSSE41},
			{"AVX", cpu.X86.HasAVX},
			{"AVX2", cpu.X86.HasAVX2},
			{"FMA", cpu.X86.HasFMA},
			{"AVX-512F", cpu.X86.HasAVX512F},
		} {
			if f.ok {
				out = append(out, f.name)
			}
		}

	case "arm64":
		if cpu.ARM64.HasASIMD {
			out = append(out, "ASIMD")
		}
		if cpu.ARM64.HasSVE {
			out = append(out, "SVE")
		}
	}

	return out
}
