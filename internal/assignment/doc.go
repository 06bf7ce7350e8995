// Package assignment provides types and functions for managing LMS assignment records.
//
// The assignment package handles record representation, due-date normalization, and
// change detection through snapshot-based diffing. Each record is assigned a
// deterministic base64-based UID generated from its URL and title, enabling calendar
// clients to treat re-imports as updates and the diff to track assignments across runs.
package assignment
