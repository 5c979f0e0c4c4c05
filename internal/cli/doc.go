// Package cli implements the interactive Fortress shell.
//
// The shell restores the device session on start, then reads one command
// per line:
//
//	register | login | logout | whoami
//	upload <path>        encrypt a local file into the vault
//	list                 show stored files, newest first
//	search [term]        case-insensitive name filter
//	download <id>        decrypt a file into the export directory
//	export <id>          write the raw ciphertext as <name>.encrypted
//	delete <id>          remove a file after confirmation
//	usage                quota readout
//	help | exit | quit
//
// Prompts, passwords and confirmations are read from the same line reader
// as commands, so piped input works end to end.
package cli
