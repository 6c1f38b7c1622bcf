package publish

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
)

// SSHPublisher uploads record snapshots to a remote host via SSH/SCP
type SSHPublisher struct {
	keyPath   string
	target    string
	client    *ssh.Client
	connected bool
}

// NewSSHPublisher creates a publisher for a user@host:path target authenticated with keyPath
func NewSSHPublisher(target, keyPath string) *SSHPublisher {
	if keyPath == "" {
		keyPath = "deploy.pem"
	}
	return &SSHPublisher{
		keyPath: keyPath,
		target:  target,
	}
}

// parseTarget parses a publish target in format: user@host:path
func parseTarget(target string) (user, host, remotePath string, err error) {
	if target == "" {
		return "", "", "", fmt.Errorf("publish target is empty")
	}

	parts := strings.SplitN(target, "@", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", "", fmt.Errorf("invalid publish target format: expected user@host:path")
	}

	user = parts[0]
	hostParts := strings.SplitN(parts[1], ":", 2)
	if len(hostParts) != 2 || hostParts[0] == "" {
		return "", "", "", fmt.Errorf("invalid publish target format: expected user@host:path")
	}

	host = hostParts[0]
	remotePath = hostParts[1]
	if remotePath == "" {
		remotePath = "."
	}

	return user, host, remotePath, nil
}

// Connect establishes the SSH connection
func (p *SSHPublisher) Connect() error {
	if p.connected {
		return nil
	}

	user, host, _, err := parseTarget(p.target)
	if err != nil {
		return fmt.Errorf("failed to parse publish target: %w", err)
	}

	keyData, err := os.ReadFile(p.keyPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file %s: %w", p.keyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return fmt.Errorf("failed to parse SSH private key: %w", err)
	}

	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: verify against a known_hosts file once targets are pinned
		Timeout:         30 * time.Second,
	}

	p.client, err = ssh.Dial("tcp", net.JoinHostPort(host, "22"), config)
	if err != nil {
		return fmt.Errorf("failed to connect to SSH server %s: %w", host, err)
	}

	p.connected = true
	log.Info().
		Str("host", host).
		Str("user", user).
		Msg("Connected to publish host")

	return nil
}

// Disconnect closes the SSH connection
func (p *SSHPublisher) Disconnect() error {
	if p.client != nil {
		err := p.client.Close()
		p.connected = false
		p.client = nil
		return err
	}
	return nil
}

// PublishFile uploads a local file to the target directory under filename
func (p *SSHPublisher) PublishFile(localPath, filename string) error {
	if !p.connected {
		if err := p.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
	}

	_, _, remotePath, err := parseTarget(p.target)
	if err != nil {
		return fmt.Errorf("failed to parse publish target: %w", err)
	}

	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer localFile.Close()

	fileInfo, err := localFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat local file: %w", err)
	}

	session, err := p.client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	// remote side is always POSIX
	remoteFilePath := path.Join(remotePath, filename)

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := session.Start(fmt.Sprintf("scp -t %s", remoteFilePath)); err != nil {
		return fmt.Errorf("failed to start SCP session: %w", err)
	}

	if err := writeSCP(stdin, filename, fileInfo.Size(), localFile); err != nil {
		return err
	}

	stdin.Close()
	if err := session.Wait(); err != nil {
		return fmt.Errorf("SCP session failed: %w", err)
	}

	log.Info().
		Str("local_path", localPath).
		Str("remote_path", remoteFilePath).
		Int64("size", fileInfo.Size()).
		Msg("Published file via SCP")

	return nil
}

// PublishJSON encodes payload as indented JSON and uploads it as filename
func (p *SSHPublisher) PublishJSON(filename string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}

	tmp, err := os.CreateTemp("", "pr-snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return p.PublishFile(tmp.Name(), filename)
}

// writeSCP sends a single file in SCP sink protocol: header, content, end marker
func writeSCP(w io.Writer, filename string, size int64, content io.Reader) error {
	header := fmt.Sprintf("C0644 %d %s\n", size, filename)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("failed to write SCP header: %w", err)
	}

	if _, err := io.Copy(w, content); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	if _, err := w.Write([]byte{0}); err != nil {
		return fmt.Errorf("failed to write SCP end marker: %w", err)
	}
	return nil
}
