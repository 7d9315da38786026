package blake3

// The AVX-512 multi-block XOF kernel is not selected on Windows; expansion
// goes through the per-block CompressXOF loop there regardless of detected
// capabilities. Kept as a variable rather than a build constraint so ports
// can lift the exclusion once verified on their target.
var xofManyAVX512Restricted = true
