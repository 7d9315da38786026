package cpu

// On 32-bit x86 SSE2 is optional and must be read from CPUID.1:EDX bit 26.
const sse2Implied = false
