// Package session sequences one fortwasm build run.
//
// A Session is built once from configuration and passed explicitly to each
// stage: Prepare creates the build and cache directories, Log owns the
// append-only compile log, and Driver runs the single containerized build
// and reports its timing. Stages return typed errors; only the command
// layer decides the process exit code.
package session
