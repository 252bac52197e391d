// Package domain contains the core domain entities and value objects for treeship.
//
// This package represents the innermost layer of the application. It has no
// dependencies on infrastructure concerns (subprocess execution, file system,
// logging) and contains only pure data and error definitions.
//
// # Entities
//
//   - [SourceEntry]: A single regular file discovered under the source root
//   - [TransferError]: A failed transfer invocation carrying its exit status
package domain
