package goml

// Lifecycle messages delivered by the tree.
const (
	MessageAwake           = "awake"
	MessageMount           = "mount"
	MessageUnmount         = "unmount"
	MessageDispose         = "dispose"
	MessageTreeInitialized = "treeInitialized"
)

// SetMounted changes the mounted state of the node and its subtree. It is a
// no-op when the state does not change. Mounting awakes queued components,
// then sends "mount" to the node, then recurses into children in list
// order. Unmounting sends "unmount" the same way.
func (n *Node) SetMounted(mounted bool) {
	if n.mounted == mounted {
		return
	}
	n.mounted = mounted
	if mounted {
		n.attemptAwakeComponents()
	}

	message := MessageUnmount
	if mounted {
		message = MessageMount
	}
	n.SendMessage(message, n)

	for _, child := range n.Children() {
		if n.mounted != mounted {
			// a handler flipped this node back
			return
		}
		if child.parent == n {
			child.SetMounted(mounted)
		}
	}
}

// attemptAwakeComponents delivers "awake" to queued components and drops
// those that accepted it. Components that refused stay queued until the next
// mount.
func (n *Node) attemptAwakeComponents() {
	queued := n.unawoken
	n.unawoken = nil

	var pending []*Component
	for _, c := range queued {
		if !c.SendMessage(MessageAwake, nil) {
			pending = append(pending, c)
		}
	}
	n.unawoken = append(pending, n.unawoken...)
}

// SendMessage delivers message to every attached component in attachment
// order and reports true. A disabled node delivers nothing and reports false.
func (n *Node) SendMessage(message string, args any) bool {
	if !n.enabled {
		return false
	}
	for _, c := range n.Components() {
		c.SendMessage(message, args)
	}
	return true
}

// BroadcastMessage sends message to the node and then to its whole subtree,
// in pre-order. A disabled node stops the descent into its subtree.
func (n *Node) BroadcastMessage(message string, args any) {
	if !n.enabled {
		return
	}
	n.SendMessage(message, args)
	for _, child := range n.Children() {
		child.BroadcastMessage(message, args)
	}
}

// BroadcastMessageRange is BroadcastMessage limited to depth levels below
// the node: 0 reaches the node only, 1 its children as well, and so on.
func (n *Node) BroadcastMessageRange(depth int, message string, args any) {
	if !n.enabled {
		return
	}
	n.SendMessage(message, args)
	if depth <= 0 {
		return
	}
	for _, child := range n.Children() {
		child.BroadcastMessageRange(depth-1, message, args)
	}
}

// AwaitingAwake returns the components still queued for "awake".
func (n *Node) AwaitingAwake() []*Component {
	return append([]*Component(nil), n.unawoken...)
}
