package cpu

// Every amd64 processor has SSE2 as part of the base architecture, so leaf 1
// does not need to be consulted for it.
const sse2Implied = true
