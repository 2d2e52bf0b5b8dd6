// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the notes-keeper command line client.
//
// Every command is a thin call into an [adapter.NotesAPI]; results are
// printed to the configured output as indented JSON.
package client
