package host

import (
	"strings"

	"github.com/beevik/cmd"
)

var cmds *cmd.Tree

// The help listing, in display order. Names of subtree commands include
// the subtree name.
var helpIndex []cmd.CommandDescriptor

func addCommand(t *cmd.Tree, group string, d cmd.CommandDescriptor) {
	t.AddCommand(d)
	d.Name = strings.TrimSpace(group + " " + d.Name)
	helpIndex = append(helpIndex, d)
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "gosparc"})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})

	// Assemble commands
	as := root.AddSubtree(cmd.TreeDescriptor{Name: "assemble", Brief: "Assemble commands"})
	addCommand(as, "assemble", cmd.CommandDescriptor{
		Name:  "file",
		Brief: "Assemble a file from disk and save the binary to disk",
		Description: "Run the cross-assembler on the specified file," +
			" producing a binary file and source map file if successful." +
			" If you want verbose output, specify true as a second parameter.",
		Usage: "assemble file <filename> [<verbose>]",
		Data:  (*Host).cmdAssembleFile,
	})
	addCommand(as, "assemble", cmd.CommandDescriptor{
		Name:  "line",
		Brief: "Encode a single instruction",
		Description: "Encode one instruction and display the words it" +
			" produces, along with any relocations it leaves for a linker." +
			" Architecture bumps accumulate across lines until the arch" +
			" command or a settings change resets them.",
		Usage: "assemble line <instruction>",
		Data:  (*Host).cmdAssembleLine,
	})

	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "arch",
		Brief: "View or request the architecture",
		Description: "When used without arguments, this command displays the" +
			" current architecture state of the line encoder. When used with an" +
			" architecture name (v6, v7, v8, sparclet, sparclite, v9, v9a)," +
			" it requests that architecture and resets the encoder.",
		Usage: "arch [<name>]",
		Data:  (*Host).cmdArch,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:        "evaluate",
		Brief:       "Evaluate an expression",
		Description: "Evaluate a mathemetical expression. Exported labels of the loaded source map may be used.",
		Usage:       "evaluate <expression>",
		Data:        (*Host).cmdEvaluate,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "execute",
		Brief: "Execute a gosparc script file",
		Description: "Load a gosparc script file from disk and execute the" +
			" commands it contains.",
		Usage: "execute <filename>",
		Data:  (*Host).cmdExecute,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "exports",
		Brief: "List exported addresses",
		Description: "Display a list of all addresses exported by the" +
			" loaded binary file. Exported addresses are stored in a binary" +
			" file's associated source map file.",
		Usage: "exports",
		Data:  (*Host).cmdExports,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "list",
		Brief: "List source code lines",
		Description: "List the source code corresponding to the machine code" +
			" at the specified address. A source map containing the address must" +
			" have been previously loaded.",
		Usage: "list [<address>] [<lines>]",
		Data:  (*Host).cmdList,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load a binary file",
		Description: "Load an assembled binary file for inspection. If the file" +
			" has an associated source map, it is loaded too and supplies the" +
			" load address.",
		Usage: "load <filename>",
		Data:  (*Host).cmdLoad,
	})

	// Memory commands
	me := root.AddSubtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	addCommand(me, "memory", cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump loaded code at address",
		Description: "Dump the contents of the loaded binary starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		Usage: "memory dump [<address>] [<bytes>]",
		Data:  (*Host).cmdMemoryDump,
	})

	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "opcodes",
		Brief: "List the forms of an opcode",
		Description: "List every form of the named opcode in the order the" +
			" encoder tries them, with the architectures able to execute each" +
			" one. Specify true as a second parameter to dump the compiled" +
			" descriptors.",
		Usage: "opcodes <mnemonic> [<verbose>]",
		Data:  (*Host).cmdOpcodes,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "relocations",
		Brief: "List relocations of the loaded binary",
		Description: "Display the relocations recorded in the source map of" +
			" the loaded binary file.",
		Usage: "relocations",
		Data:  (*Host).cmdRelocations,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		Usage: "set [<var> <value>]",
		Data:  (*Host).cmdSet,
	})

	// Add command shortcuts.
	root.AddShortcut("a", "assemble file")
	root.AddShortcut("al", "assemble line")
	root.AddShortcut("e", "evaluate")
	root.AddShortcut("l", "list")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("o", "opcodes")
	root.AddShortcut("?", "help")

	cmds = root
}
