package registry

// catalog is the ordered list of every command Loom supports. Contracts
// are grouped by namespace; within a namespace, order is the order help
// output lists them in.
var catalog = []Contract{
	// project namespace
	{
		ID:        "project_list",
		Namespace: "project",
		Segments:  []string{"list"},
		Flags: map[string]FlagSpec{
			"limit":    {Type: FlagTypeNumber, Default: "50", Description: "Maximum number of projects to return"},
			"archived": {Type: FlagTypeBool, Default: "false", Description: "Include archived projects"},
		},
		Summary: "List all projects",
		Examples: []string{
			"loom project list",
			"loom project list --archived true",
		},
	},
	{
		ID:        "project_view",
		Namespace: "project",
		Segments:  []string{"view"},
		Flags: map[string]FlagSpec{
			"id":   {Type: FlagTypeString, Required: true, Alternatives: []string{"name"}, Description: "Project ID"},
			"name": {Type: FlagTypeString, Description: "Project name (alternative to --id)"},
		},
		Summary: "Show one project in detail",
		Examples: []string{
			"loom project view --id p-42",
			`loom project view --name "Website Redesign"`,
		},
	},
	{
		ID:        "project_create",
		Namespace: "project",
		Segments:  []string{"create"},
		Flags: map[string]FlagSpec{
			"name":        {Type: FlagTypeString, Required: true, Description: "Project name"},
			"description": {Type: FlagTypeString, Description: "Short project description"},
			"tags":        {Type: FlagTypeStringList, Description: "Comma-separated tags"},
		},
		Summary: "Create a new project",
		Examples: []string{
			`loom project create --name "Website Redesign" --tags web,design`,
		},
	},
	{
		ID:        "project_select",
		Namespace: "project",
		Segments:  []string{"select"},
		Flags: map[string]FlagSpec{
			"id":   {Type: FlagTypeString, Required: true, Alternatives: []string{"name"}, Description: "Project ID"},
			"name": {Type: FlagTypeString, Description: "Project name (alternative to --id)"},
		},
		Summary: "Make a project the active selection",
		Help: `Selecting a project makes it the ambient context for roadmap and chat
commands. Any previously selected roadmap or chat is cleared, since those
selections belong to the old project.`,
		Examples: []string{
			"loom project select --id p-42",
		},
	},

	// roadmap namespace
	{
		ID:          "roadmap_list",
		Namespace:   "roadmap",
		Segments:    []string{"list"},
		ContextKeys: []string{ContextProject},
		Flags: map[string]FlagSpec{
			"limit": {Type: FlagTypeNumber, Default: "50", Description: "Maximum number of roadmaps to return"},
		},
		Summary: "List roadmaps in the active project",
		Examples: []string{
			"loom roadmap list",
		},
	},
	{
		ID:          "roadmap_view",
		Namespace:   "roadmap",
		Segments:    []string{"view"},
		ContextKeys: []string{ContextProject},
		Flags: map[string]FlagSpec{
			"id":    {Type: FlagTypeString, Required: true, Alternatives: []string{"title"}, Description: "Roadmap ID"},
			"title": {Type: FlagTypeString, Description: "Roadmap title (alternative to --id)"},
		},
		Summary: "Show one roadmap in detail",
		Examples: []string{
			"loom roadmap view --id r-7",
		},
	},
	{
		ID:          "roadmap_view_tasks",
		Namespace:   "roadmap",
		Segments:    []string{"view", "tasks"},
		ContextKeys: []string{ContextProject},
		Flags: map[string]FlagSpec{
			"id":     {Type: FlagTypeString, Required: true, Alternatives: []string{"title"}, Description: "Roadmap ID"},
			"title":  {Type: FlagTypeString, Description: "Roadmap title (alternative to --id)"},
			"status": {Type: FlagTypeString, Description: "Filter tasks by status"},
		},
		Summary: "Show the task breakdown of a roadmap",
		Examples: []string{
			"loom roadmap view tasks --id r-7 --status open",
		},
	},
	{
		ID:          "roadmap_create",
		Namespace:   "roadmap",
		Segments:    []string{"create"},
		ContextKeys: []string{ContextProject},
		Flags: map[string]FlagSpec{
			"title":       {Type: FlagTypeString, Required: true, Description: "Roadmap title"},
			"description": {Type: FlagTypeString, Description: "Short roadmap description"},
		},
		Summary: "Create a roadmap in the active project",
		Examples: []string{
			`loom roadmap create --title "Q3 Launch"`,
		},
	},
	{
		ID:          "roadmap_select",
		Namespace:   "roadmap",
		Segments:    []string{"select"},
		ContextKeys: []string{ContextProject},
		Flags: map[string]FlagSpec{
			"id":    {Type: FlagTypeString, Required: true, Alternatives: []string{"title"}, Description: "Roadmap ID"},
			"title": {Type: FlagTypeString, Description: "Roadmap title (alternative to --id)"},
		},
		Summary: "Make a roadmap the active selection",
		Help: `Selecting a roadmap requires an active project. Any previously selected
chat is cleared, since it belongs to the old roadmap.`,
		Examples: []string{
			"loom roadmap select --id r-7",
		},
	},

	// chat namespace
	{
		ID:          "chat_list",
		Namespace:   "chat",
		Segments:    []string{"list"},
		ContextKeys: []string{ContextProject, ContextRoadmap},
		Flags: map[string]FlagSpec{
			"limit": {Type: FlagTypeNumber, Default: "50", Description: "Maximum number of chats to return"},
		},
		Summary: "List chats in the active roadmap",
		Examples: []string{
			"loom chat list",
		},
	},
	{
		ID:          "chat_create",
		Namespace:   "chat",
		Segments:    []string{"create"},
		ContextKeys: []string{ContextProject, ContextRoadmap},
		Flags: map[string]FlagSpec{
			"title": {Type: FlagTypeString, Required: true, Description: "Chat title"},
		},
		Summary: "Create a chat in the active roadmap",
		Examples: []string{
			`loom chat create --title "API design discussion"`,
		},
	},
	{
		ID:          "chat_select",
		Namespace:   "chat",
		Segments:    []string{"select"},
		ContextKeys: []string{ContextProject, ContextRoadmap},
		Flags: map[string]FlagSpec{
			"id":    {Type: FlagTypeString, Required: true, Alternatives: []string{"title"}, Description: "Chat ID"},
			"title": {Type: FlagTypeString, Description: "Chat title (alternative to --id)"},
		},
		Summary: "Make a chat the active selection",
		Examples: []string{
			"loom chat select --id c-19",
		},
	},

	// agent namespace
	{
		ID:          "agent_chat_send",
		Namespace:   "agent",
		Segments:    []string{"chat", "send"},
		ContextKeys: []string{ContextProject, ContextRoadmap, ContextChat},
		Streaming:   true,
		Flags: map[string]FlagSpec{
			"message": {Type: FlagTypeString, Required: true, Description: "Message to send to the agent"},
			"role":    {Type: FlagTypeString, Default: "user", Description: "Sender role for the message"},
		},
		Summary: "Send a message to the agent in the active chat",
		Help: `Sends a message into the active chat and streams the agent's response
back as an event sequence. Requires an active project, roadmap, and chat.`,
		Examples: []string{
			`loom agent chat send --message "hi there" --role user`,
		},
	},
	{
		ID:          "agent_run",
		Namespace:   "agent",
		Segments:    []string{"run"},
		ContextKeys: []string{ContextProject, ContextRoadmap},
		Streaming:   true,
		Flags: map[string]FlagSpec{
			"task":    {Type: FlagTypeString, Required: true, Description: "Task description for the agent"},
			"timeout": {Type: FlagTypeNumber, Default: "600", Description: "Run timeout in seconds"},
		},
		Summary: "Run an agent task against the active roadmap",
		Examples: []string{
			`loom agent run --task "Summarize open items"`,
		},
	},

	// settings namespace
	{
		ID:        "settings_show",
		Namespace: "settings",
		Segments:  []string{"show"},
		Summary:   "Show all settings",
		Examples: []string{
			"loom settings show",
		},
	},
	{
		ID:        "settings_set",
		Namespace: "settings",
		Segments:  []string{"set"},
		Flags: map[string]FlagSpec{
			"key":   {Type: FlagTypeString, Required: true, Description: "Setting key"},
			"value": {Type: FlagTypeString, Required: true, Description: "New value"},
		},
		Summary: "Set a setting value",
		Examples: []string{
			"loom settings set --key theme --value dark",
		},
	},
	{
		ID:        "settings_reset",
		Namespace: "settings",
		Segments:  []string{"reset"},
		Flags: map[string]FlagSpec{
			"key": {Type: FlagTypeString, Required: true, Alternatives: []string{"all"}, Description: "Setting key to reset"},
			"all": {Type: FlagTypeBool, Description: "Reset every setting to its default"},
		},
		ExclusiveGroups: [][]string{{"key", "all"}},
		Summary:         "Reset one setting, or all of them",
		Examples: []string{
			"loom settings reset --key theme",
			"loom settings reset --all",
		},
	},

	// alias namespace
	{
		ID:        "alias_list",
		Namespace: "alias",
		Segments:  []string{"list"},
		Summary:   "List defined command aliases",
		Examples: []string{
			"loom alias list",
		},
	},
	{
		ID:        "alias_set",
		Namespace: "alias",
		Segments:  []string{"set"},
		Flags: map[string]FlagSpec{
			"name":    {Type: FlagTypeString, Required: true, Description: "Alias name"},
			"command": {Type: FlagTypeString, Required: true, Description: "Command line the alias expands to"},
		},
		Summary: "Define or replace a command alias",
		Examples: []string{
			`loom alias set --name pl --command "project list"`,
		},
	},
	{
		ID:        "alias_remove",
		Namespace: "alias",
		Segments:  []string{"remove"},
		Flags: map[string]FlagSpec{
			"name": {Type: FlagTypeString, Required: true, Description: "Alias name"},
		},
		Summary: "Remove a command alias",
		Examples: []string{
			"loom alias remove --name pl",
		},
	},

	// context namespace
	{
		ID:        "context_show",
		Namespace: "context",
		Segments:  []string{"show"},
		Flags: map[string]FlagSpec{
			"history": {Type: FlagTypeBool, Description: "Include recent invocation history"},
		},
		Summary: "Show the active project/roadmap/chat selection",
		Examples: []string{
			"loom context show",
			"loom context show --history",
		},
	},
	{
		ID:        "context_clear",
		Namespace: "context",
		Segments:  []string{"clear"},
		Flags: map[string]FlagSpec{
			"level": {Type: FlagTypeString, Default: "project", Description: "Selection level to clear: project, roadmap, or chat"},
		},
		Summary: "Clear the active selection at a level and below",
		Help: `Clearing at the project level empties the whole selection. Clearing at
the roadmap level keeps the project but drops roadmap and chat. Clearing
at the chat level drops only the chat.`,
		Examples: []string{
			"loom context clear",
			"loom context clear --level chat",
		},
	},
}
