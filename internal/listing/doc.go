// Package listing turns LMS assignment listing rows into assignment row
// records.
//
// The listing package consumes table rows that the out-of-scope fetch glue
// already extracted (or whole listing pages it already downloaded) and
// decides which rows represent assignments with a discoverable due date.
// It recognizes both Moodle-style assignment indexes (/mod/assign/...) and
// ee-class homework listings (/course/homework/...). Rows that do not look
// like assignments are filtered, never reported as errors.
package listing
