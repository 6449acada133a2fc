package inventory

import (
	log "github.com/sirupsen/logrus"
)

const (
	Port = 50000

	LocalHostPort = "localhost:50000"
)

// Store is the write contract the parser drives. Every observable
// effect of a parse goes through these four operations.
type Store interface {
	AddHost(name string)
	AddGroup(name string)
	AddChild(parent, child string)
	SetVariable(host, key string, value interface{})
}

type group struct {
	hostSet  map[string]struct{}
	childSet map[string]struct{}

	hosts    []string
	children []string
}

func newGroup() *group {
	return &group{
		hostSet:  map[string]struct{}{},
		childSet: map[string]struct{}{},
	}
}

// Inventory is the in-memory store populated by a parse. Not thread
// safe; it is only ever written from a single synchronous call chain.
type Inventory struct {
	hosts     map[string]map[string]interface{}
	groups    map[string]*group
	hostOrder []string
}

func New() *Inventory {
	return &Inventory{
		hosts:  map[string]map[string]interface{}{},
		groups: map[string]*group{},
	}
}

func (i *Inventory) AddHost(name string) {
	if _, ok := i.hosts[name]; ok {
		return
	}

	log.Debugf("adding host %s", name)

	i.hosts[name] = map[string]interface{}{}
	i.hostOrder = append(i.hostOrder, name)
}

func (i *Inventory) AddGroup(name string) {
	if _, ok := i.groups[name]; ok {
		return
	}

	log.Debugf("adding group %s", name)

	i.groups[name] = newGroup()
}

// AddChild registers child under parent. A child that is a known host
// becomes a host member, anything else is treated as a subgroup and
// registered on the fly. A group is never registered as its own child.
func (i *Inventory) AddChild(parent, child string) {
	if parent == child {
		log.Warnf("refusing to add %s as a child of itself", parent)

		return
	}

	i.AddGroup(parent)
	parentGroup := i.groups[parent]

	if _, isHost := i.hosts[child]; isHost {
		if _, ok := parentGroup.hostSet[child]; ok {
			return
		}

		parentGroup.hostSet[child] = struct{}{}
		parentGroup.hosts = append(parentGroup.hosts, child)

		return
	}

	i.AddGroup(child)

	if _, ok := parentGroup.childSet[child]; ok {
		return
	}

	parentGroup.childSet[child] = struct{}{}
	parentGroup.children = append(parentGroup.children, child)
}

func (i *Inventory) SetVariable(host, key string, value interface{}) {
	i.AddHost(host)
	i.hosts[host][key] = value
}

// Hosts returns host names in insertion order.
func (i *Inventory) Hosts() []string {
	hosts := make([]string, len(i.hostOrder))
	copy(hosts, i.hostOrder)

	return hosts
}

// HostVars returns a copy of the variables of a host.
func (i *Inventory) HostVars(host string) (map[string]interface{}, bool) {
	vars, ok := i.hosts[host]
	if !ok {
		return nil, false
	}

	varsCopy := make(map[string]interface{}, len(vars))
	for key, value := range vars {
		varsCopy[key] = value
	}

	return varsCopy, true
}

func (i *Inventory) HasGroup(name string) bool {
	_, ok := i.groups[name]

	return ok
}

// GroupHosts returns the host members of a group in insertion order.
func (i *Inventory) GroupHosts(name string) []string {
	grp, ok := i.groups[name]
	if !ok {
		return nil
	}

	hosts := make([]string, len(grp.hosts))
	copy(hosts, grp.hosts)

	return hosts
}

// GroupChildren returns the subgroups of a group in insertion order.
func (i *Inventory) GroupChildren(name string) []string {
	grp, ok := i.groups[name]
	if !ok {
		return nil
	}

	children := make([]string, len(grp.children))
	copy(children, grp.children)

	return children
}
