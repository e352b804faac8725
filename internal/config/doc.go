// Package config loads the kitbag tool's HCL configuration: the queue
// server address, per-tube put defaults, and HTTP client settings. A
// config path may be a single .hcl file or a directory of them; later
// files (in sorted order) override earlier ones block by block.
package config
